package domain

// Customer represents a rental customer.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsGold     bool   `json:"isGold"` // Gold members may receive discounts in the future
	AuditFields
}
