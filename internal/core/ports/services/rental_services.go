package services

import (
	"context"

	"github.com/vidly/vidly_backend/internal/core/domain"
)

// RentalReaderSvc defines read operations for the rental ledger
type RentalReaderSvc interface {
	GetRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error)
	ListRentals(ctx context.Context, limit int, offset int) ([]domain.Rental, error)
}

// RentalLifecycleSvc defines the checkout and return operations.
//
// Checkout opens a rental: it resolves both references against the catalog,
// reserves one unit of stock before any ledger write, then persists the rental
// with customer/movie snapshots. Failures map to apperrors.ErrInvalidReference
// and apperrors.ErrOutOfStock; a ledger write failure after a successful
// reservation releases the reserved unit before returning.
//
// ProcessReturn closes the unique active rental for the pair: it sets the
// return date, computes the fee from the snapshotted rate with whole-day
// truncation, then releases the unit back to stock. Failures map to
// apperrors.ErrRentalNotFound and apperrors.ErrAlreadyReturned; a second call
// for the same rental never recomputes the fee or releases a second unit.
type RentalLifecycleSvc interface {
	Checkout(ctx context.Context, customerID, movieID string, userID string) (*domain.Rental, error)
	ProcessReturn(ctx context.Context, customerID, movieID string, userID string) (*domain.Rental, error)
}

// RentalSvcFacade combines all rental-related service interfaces
type RentalSvcFacade interface {
	RentalReaderSvc
	RentalLifecycleSvc
}
