package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rental represents a rental row in the rentals table. Customer and movie
// fields are flattened snapshot columns, not foreign-key joins; they are
// captured once at checkout and never refreshed from the catalog.
type Rental struct {
	RentalID string `db:"rental_id"`

	CustomerID     string `db:"customer_id"`
	CustomerName   string `db:"customer_name"`
	CustomerPhone  string `db:"customer_phone"`
	CustomerIsGold bool   `db:"customer_is_gold"`

	MovieID         string          `db:"movie_id"`
	MovieTitle      string          `db:"movie_title"`
	DailyRentalRate decimal.Decimal `db:"daily_rental_rate"`

	DateOut      time.Time        `db:"date_out"`
	DateReturned *time.Time       `db:"date_returned"` // NULL while active
	RentalFee    *decimal.Decimal `db:"rental_fee"`    // NULL while active
	AuditFields
}
