package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vidly/vidly_backend/internal/core/domain"
)

// RentalReader defines read operations for rental ledger data
type RentalReader interface {
	// FindRentalByID retrieves a specific rental by its unique identifier.
	FindRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error)

	// FindActiveRentalByParty retrieves the unique open rental for the given
	// (customer, movie) pair, i.e. the row whose date_returned is NULL.
	FindActiveRentalByParty(ctx context.Context, customerID, movieID string) (*domain.Rental, error)

	// FindLatestRentalByParty retrieves the most recent rental for the pair
	// regardless of state. Used to distinguish "already returned" from "never
	// rented" after a guarded close affects no rows.
	FindLatestRentalByParty(ctx context.Context, customerID, movieID string) (*domain.Rental, error)

	// ListRentals retrieves a paginated list of rentals, newest first.
	ListRentals(ctx context.Context, limit int, offset int) ([]domain.Rental, error)

	// ListActiveRentalsOutSince retrieves open rentals whose checkout date is
	// at or before the given cutoff. Used by the overdue scan.
	ListActiveRentalsOutSince(ctx context.Context, cutoff time.Time) ([]domain.Rental, error)
}

// RentalWriter defines write operations for rental ledger data
type RentalWriter interface {
	// SaveRental persists a new active rental.
	SaveRental(ctx context.Context, rental domain.Rental) error

	// CloseRental marks the rental returned and sets its fee, in a single
	// statement guarded on date_returned IS NULL. It returns
	// apperrors.ErrNotFound when no open row with that id exists, which covers
	// both an unknown id and a concurrently closed rental; the caller
	// disambiguates. A closed rental's fee and return date are never rewritten.
	CloseRental(ctx context.Context, rentalID string, returnedAt time.Time, fee decimal.Decimal, closedByUserID string) error
}

// RentalRepositoryFacade combines all rental-related repository interfaces
type RentalRepositoryFacade interface {
	RentalReader
	RentalWriter
}
