package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/vidly/vidly_backend/internal/apperrors"
	"github.com/vidly/vidly_backend/internal/core/domain"
	portsrepo "github.com/vidly/vidly_backend/internal/core/ports/repositories"
	"github.com/vidly/vidly_backend/internal/models"
)

type PgxRentalRepository struct {
	pool *pgxpool.Pool
}

// NewRentalRepository creates a new repository for rental ledger data.
func NewRentalRepository(pool *pgxpool.Pool) portsrepo.RentalRepositoryFacade {
	return &PgxRentalRepository{pool: pool}
}

var _ portsrepo.RentalRepositoryFacade = (*PgxRentalRepository)(nil)

const rentalColumns = `rental_id, customer_id, customer_name, customer_phone, customer_is_gold,
		movie_id, movie_title, daily_rental_rate, date_out, date_returned, rental_fee,
		created_at, created_by, last_updated_at, last_updated_by`

func toModelRental(d domain.Rental) models.Rental {
	return models.Rental{
		RentalID:        d.RentalID,
		CustomerID:      d.Customer.CustomerID,
		CustomerName:    d.Customer.Name,
		CustomerPhone:   d.Customer.Phone,
		CustomerIsGold:  d.Customer.IsGold,
		MovieID:         d.Movie.MovieID,
		MovieTitle:      d.Movie.Title,
		DailyRentalRate: d.Movie.DailyRentalRate,
		DateOut:         d.DateOut,
		DateReturned:    d.DateReturned,
		RentalFee:       d.RentalFee,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainRental(m models.Rental) domain.Rental {
	return domain.Rental{
		RentalID: m.RentalID,
		Customer: domain.CustomerSnapshot{
			CustomerID: m.CustomerID,
			Name:       m.CustomerName,
			Phone:      m.CustomerPhone,
			IsGold:     m.CustomerIsGold,
		},
		Movie: domain.MovieSnapshot{
			MovieID:         m.MovieID,
			Title:           m.MovieTitle,
			DailyRentalRate: m.DailyRentalRate,
		},
		DateOut:      m.DateOut,
		DateReturned: m.DateReturned,
		RentalFee:    m.RentalFee,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanRental(row pgx.Row) (*domain.Rental, error) {
	var m models.Rental
	err := row.Scan(
		&m.RentalID, &m.CustomerID, &m.CustomerName, &m.CustomerPhone, &m.CustomerIsGold,
		&m.MovieID, &m.MovieTitle, &m.DailyRentalRate, &m.DateOut, &m.DateReturned, &m.RentalFee,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainRental(m)
	return &d, nil
}

// SaveRental inserts a new active rental. A partial unique index on
// (customer_id, movie_id) WHERE date_returned IS NULL backs the "at most one
// open rental per pair" invariant at the storage level.
func (r *PgxRentalRepository) SaveRental(ctx context.Context, rental domain.Rental) error {
	m := toModelRental(rental)

	query := `
		INSERT INTO rentals (rental_id, customer_id, customer_name, customer_phone, customer_is_gold,
			movie_id, movie_title, daily_rental_rate, date_out, date_returned, rental_fee,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		m.RentalID, m.CustomerID, m.CustomerName, m.CustomerPhone, m.CustomerIsGold,
		m.MovieID, m.MovieTitle, m.DailyRentalRate, m.DateOut, m.DateReturned, m.RentalFee,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: customer %s already has an open rental of movie %s",
				apperrors.ErrDuplicate, m.CustomerID, m.MovieID)
		}
		return fmt.Errorf("failed to save rental %s: %w", m.RentalID, err)
	}
	return nil
}

// FindRentalByID retrieves a rental by its ID.
func (r *PgxRentalRepository) FindRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE rental_id = $1;`
	rental, err := scanRental(r.pool.QueryRow(ctx, query, rentalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rental by ID %s: %w", rentalID, err)
	}
	return rental, nil
}

// FindActiveRentalByParty retrieves the unique open rental for (customer, movie).
func (r *PgxRentalRepository) FindActiveRentalByParty(ctx context.Context, customerID, movieID string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + `
		FROM rentals
		WHERE customer_id = $1 AND movie_id = $2 AND date_returned IS NULL;`
	rental, err := scanRental(r.pool.QueryRow(ctx, query, customerID, movieID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active rental for customer %s, movie %s: %w", customerID, movieID, err)
	}
	return rental, nil
}

// FindLatestRentalByParty retrieves the most recent rental for the pair
// regardless of state.
func (r *PgxRentalRepository) FindLatestRentalByParty(ctx context.Context, customerID, movieID string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + `
		FROM rentals
		WHERE customer_id = $1 AND movie_id = $2
		ORDER BY date_out DESC
		LIMIT 1;`
	rental, err := scanRental(r.pool.QueryRow(ctx, query, customerID, movieID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rental for customer %s, movie %s: %w", customerID, movieID, err)
	}
	return rental, nil
}

// ListRentals retrieves a paginated list of rentals, newest first.
func (r *PgxRentalRepository) ListRentals(ctx context.Context, limit int, offset int) ([]domain.Rental, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + rentalColumns + `
		FROM rentals
		ORDER BY date_out DESC
		LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}
	defer rows.Close()

	return collectRentals(rows)
}

// ListActiveRentalsOutSince retrieves open rentals checked out at or before cutoff.
func (r *PgxRentalRepository) ListActiveRentalsOutSince(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + `
		FROM rentals
		WHERE date_returned IS NULL AND date_out <= $1
		ORDER BY date_out;`
	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue rentals: %w", err)
	}
	defer rows.Close()

	return collectRentals(rows)
}

func collectRentals(rows pgx.Rows) ([]domain.Rental, error) {
	rentals := []domain.Rental{}
	for rows.Next() {
		var m models.Rental
		err := rows.Scan(
			&m.RentalID, &m.CustomerID, &m.CustomerName, &m.CustomerPhone, &m.CustomerIsGold,
			&m.MovieID, &m.MovieTitle, &m.DailyRentalRate, &m.DateOut, &m.DateReturned, &m.RentalFee,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rental row: %w", err)
		}
		rentals = append(rentals, toDomainRental(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating rental rows: %w", rows.Err())
	}
	return rentals, nil
}

// CloseRental marks a rental returned and sets its fee in one statement. The
// date_returned IS NULL guard makes the already-returned check and the write a
// single atomic operation: of two concurrent closes on the same rental, exactly
// one affects a row. Zero rows means no open rental with that id exists.
func (r *PgxRentalRepository) CloseRental(ctx context.Context, rentalID string, returnedAt time.Time, fee decimal.Decimal, closedByUserID string) error {
	query := `
		UPDATE rentals
		SET date_returned = $2, rental_fee = $3, last_updated_at = $4, last_updated_by = $5
		WHERE rental_id = $1 AND date_returned IS NULL;
	`
	cmdTag, err := r.pool.Exec(ctx, query, rentalID, returnedAt, fee, returnedAt, closedByUserID)
	if err != nil {
		return fmt.Errorf("failed to close rental %s: %w", rentalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
