package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerSnapshot is the subset of customer fields captured on a rental at
// checkout time. It is an owned value, not a reference into the catalog, so a
// later customer edit never changes a historical rental.
type CustomerSnapshot struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsGold     bool   `json:"isGold"`
}

// MovieSnapshot is the subset of movie fields captured on a rental at checkout
// time. The snapshotted DailyRentalRate is what the fee is computed from, so a
// later catalog price change never affects an outstanding rental.
type MovieSnapshot struct {
	MovieID         string          `json:"movieID"`
	Title           string          `json:"title"`
	DailyRentalRate decimal.Decimal `json:"dailyRentalRate"`
}

// Rental represents one checkout of a movie by a customer.
// DateReturned == nil means the rental is active; once set, the rental is
// closed and never re-opened.
type Rental struct {
	RentalID     string           `json:"rentalID"` // Primary Key (UUID)
	Customer     CustomerSnapshot `json:"customer"`
	Movie        MovieSnapshot    `json:"movie"`
	DateOut      time.Time        `json:"dateOut"`
	DateReturned *time.Time       `json:"dateReturned,omitempty"`
	RentalFee    *decimal.Decimal `json:"rentalFee,omitempty"` // Set exactly once, when DateReturned is set
	AuditFields
}

// IsReturned reports whether the rental has been closed.
func (r *Rental) IsReturned() bool {
	return r.DateReturned != nil
}

// RentalDays returns the number of whole days elapsed between DateOut and the
// given return time, truncated toward zero. A same-day return yields 0.
func (r *Rental) RentalDays(returnedAt time.Time) int {
	days := int(returnedAt.Sub(r.DateOut).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// FeeAt computes the rental fee for a return at the given time, using the
// snapshotted daily rate: whole elapsed days times the rate. Same-day returns
// are free; sub-day remainders are not billed.
func (r *Rental) FeeAt(returnedAt time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(r.RentalDays(returnedAt))).Mul(r.Movie.DailyRentalRate)
}
