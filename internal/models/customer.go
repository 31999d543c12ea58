package models

// Customer represents a customer row in the customers table.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	IsGold     bool   `db:"is_gold"`
	AuditFields
}
