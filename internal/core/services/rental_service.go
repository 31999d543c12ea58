package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vidly/vidly_backend/internal/apperrors"
	"github.com/vidly/vidly_backend/internal/core/domain"
	portsrepo "github.com/vidly/vidly_backend/internal/core/ports/repositories"
	portssvc "github.com/vidly/vidly_backend/internal/core/ports/services"
	"github.com/vidly/vidly_backend/internal/middleware"
)

// rentalService implements the rental lifecycle: it owns rental records and
// drives the inventory adjustments that keep the stock counter consistent with
// outstanding rentals. The stock counter itself is only ever touched through
// the movie repository's ReserveUnit/ReleaseUnit.
type rentalService struct {
	rentalRepo   portsrepo.RentalRepositoryFacade
	movieRepo    portsrepo.MovieRepositoryFacade
	customerRepo portsrepo.CustomerReader
}

// NewRentalService creates a new RentalService.
func NewRentalService(
	rentalRepo portsrepo.RentalRepositoryFacade,
	movieRepo portsrepo.MovieRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
) portssvc.RentalSvcFacade {
	return &rentalService{
		rentalRepo:   rentalRepo,
		movieRepo:    movieRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.RentalSvcFacade = (*rentalService)(nil)

// Checkout opens a new rental for (customer, movie).
//
// Ordering matters: the stock unit is reserved before the ledger write, never
// after, so there is no window where a rental exists against an oversold
// movie. If the ledger write then fails, the reserved unit is released again;
// that compensation is the only cross-store rollback in the system.
func (s *rentalService) Checkout(ctx context.Context, customerID, movieID string, userID string) (*domain.Rental, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrInvalidReference, customerID)
		}
		return nil, fmt.Errorf("failed to resolve customer %s: %w", customerID, err)
	}

	movie, err := s.movieRepo.FindMovieByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: movie %s", apperrors.ErrInvalidReference, movieID)
		}
		return nil, fmt.Errorf("failed to resolve movie %s: %w", movieID, err)
	}

	remaining, err := s.movieRepo.ReserveUnit(ctx, movieID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrOutOfStock):
			logger.Info("Checkout rejected, movie out of stock", slog.String("movie_id", movieID))
			return nil, fmt.Errorf("%w: movie %s", apperrors.ErrOutOfStock, movieID)
		case errors.Is(err, apperrors.ErrNotFound):
			// Movie deleted between the resolve and the reserve.
			return nil, fmt.Errorf("%w: movie %s", apperrors.ErrInvalidReference, movieID)
		default:
			return nil, fmt.Errorf("failed to reserve stock for movie %s: %w", movieID, err)
		}
	}

	now := time.Now().UTC()
	rental := domain.Rental{
		RentalID: uuid.NewString(),
		Customer: domain.CustomerSnapshot{
			CustomerID: customer.CustomerID,
			Name:       customer.Name,
			Phone:      customer.Phone,
			IsGold:     customer.IsGold,
		},
		Movie: domain.MovieSnapshot{
			MovieID:         movie.MovieID,
			Title:           movie.Title,
			DailyRentalRate: movie.DailyRentalRate,
		},
		DateOut: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.rentalRepo.SaveRental(ctx, rental); err != nil {
		// The unit was already taken from stock; give it back before failing.
		if _, relErr := s.movieRepo.ReleaseUnit(ctx, movieID); relErr != nil {
			logger.Error("Compensating release failed after ledger write failure, stock unit leaked",
				slog.String("movie_id", movieID),
				slog.String("save_error", err.Error()),
				slog.String("release_error", relErr.Error()))
			return nil, fmt.Errorf("%w: failed to release unit for movie %s after save failure", apperrors.ErrInventoryInconsistency, movieID)
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: customer %s already has an open rental of movie %s", apperrors.ErrConflict, customerID, movieID)
		}
		return nil, fmt.Errorf("failed to save rental: %w", err)
	}

	logger.Info("Rental checked out",
		slog.String("rental_id", rental.RentalID),
		slog.String("customer_id", customerID),
		slog.String("movie_id", movieID),
		slog.Int("stock_remaining", remaining))
	return &rental, nil
}

// ProcessReturn closes the unique active rental for (customer, movie).
//
// The ledger update is made durable before the stock release: on a partial
// failure the system ends up with "rental closed, unit still held", which a
// restock reconciliation can repair, rather than "unit released, rental still
// open", which would let the same physical copy go out twice.
func (s *rentalService) ProcessReturn(ctx context.Context, customerID, movieID string, userID string) (*domain.Rental, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rental, err := s.rentalRepo.FindActiveRentalByParty(ctx, customerID, movieID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s, movie %s", apperrors.ErrRentalNotFound, customerID, movieID)
		}
		return nil, fmt.Errorf("failed to look up active rental: %w", err)
	}

	now := time.Now().UTC()
	fee := rental.FeeAt(now)

	// The repository close is guarded on date_returned IS NULL, so a rental is
	// closed at most once: its fee is computed once and the unit released once,
	// no matter how many duplicate requests race here.
	if err := s.rentalRepo.CloseRental(ctx, rental.RentalID, now, fee, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.classifyLostClose(ctx, customerID, movieID)
		}
		return nil, fmt.Errorf("failed to close rental %s: %w", rental.RentalID, err)
	}

	rental.DateReturned = &now
	rental.RentalFee = &fee
	rental.LastUpdatedAt = now
	rental.LastUpdatedBy = userID

	if _, err := s.movieRepo.ReleaseUnit(ctx, movieID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The rental is already closed; surfacing a client error here would
			// lie about the ledger state. This is a server-side fault.
			logger.Error("Stock release hit a missing movie after rental close",
				slog.String("rental_id", rental.RentalID),
				slog.String("movie_id", movieID))
			return nil, fmt.Errorf("%w: movie %s missing during release", apperrors.ErrInventoryInconsistency, movieID)
		}
		return nil, fmt.Errorf("failed to release stock for movie %s: %w", movieID, err)
	}

	logger.Info("Rental returned",
		slog.String("rental_id", rental.RentalID),
		slog.String("customer_id", customerID),
		slog.String("movie_id", movieID),
		slog.String("rental_fee", fee.String()))
	return rental, nil
}

// classifyLostClose explains a guarded close that affected no rows: either a
// concurrent request closed the same rental first, or the rental vanished.
func (s *rentalService) classifyLostClose(ctx context.Context, customerID, movieID string) error {
	latest, err := s.rentalRepo.FindLatestRentalByParty(ctx, customerID, movieID)
	if err == nil && latest.IsReturned() {
		return fmt.Errorf("%w: rental %s", apperrors.ErrAlreadyReturned, latest.RentalID)
	}
	return fmt.Errorf("%w: customer %s, movie %s", apperrors.ErrRentalNotFound, customerID, movieID)
}

// GetRentalByID retrieves a rental by id.
func (s *rentalService) GetRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.FindRentalByID(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find rental %s: %w", rentalID, err)
	}
	return rental, nil
}

// ListRentals retrieves a paginated list of rentals.
func (s *rentalService) ListRentals(ctx context.Context, limit int, offset int) ([]domain.Rental, error) {
	rentals, err := s.rentalRepo.ListRentals(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	return rentals, nil
}
