package domain

import "github.com/shopspring/decimal"

// Movie represents a title in the catalog along with its stock counter.
// NumberInStock is mutated only through the inventory repository's atomic
// adjust operations; it must stay within [0, configured catalog maximum].
type Movie struct {
	MovieID         string          `json:"movieID"` // Primary Key (UUID)
	Title           string          `json:"title"`
	Genre           Genre           `json:"genre"` // Denormalized genre snapshot
	NumberInStock   int             `json:"numberInStock"`
	DailyRentalRate decimal.Decimal `json:"dailyRentalRate"` // Cost per rental day, positive
	AuditFields
}
