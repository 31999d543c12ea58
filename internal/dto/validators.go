package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// positiveDecimal reports whether the field holds a decimal strictly greater
// than zero. The stock "gt" rule doesn't understand decimal.Decimal.
func positiveDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive()
}

// RegisterCustomValidations installs the custom binding rules on gin's
// validator engine. Called once at startup.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("positivedecimal", positiveDecimal)
}
