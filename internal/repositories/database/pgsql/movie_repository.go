package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidly/vidly_backend/internal/apperrors"
	"github.com/vidly/vidly_backend/internal/core/domain"
	portsrepo "github.com/vidly/vidly_backend/internal/core/ports/repositories"
	"github.com/vidly/vidly_backend/internal/models"
)

type PgxMovieRepository struct {
	pool *pgxpool.Pool
}

// NewMovieRepository creates a new repository for movie catalog and inventory data.
func NewMovieRepository(pool *pgxpool.Pool) portsrepo.MovieRepositoryFacade {
	return &PgxMovieRepository{pool: pool}
}

var _ portsrepo.MovieRepositoryFacade = (*PgxMovieRepository)(nil)

func toModelMovie(d domain.Movie) models.Movie {
	return models.Movie{
		MovieID:         d.MovieID,
		Title:           d.Title,
		GenreID:         d.Genre.GenreID,
		GenreName:       d.Genre.Name,
		NumberInStock:   d.NumberInStock,
		DailyRentalRate: d.DailyRentalRate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainMovie(m models.Movie) domain.Movie {
	return domain.Movie{
		MovieID: m.MovieID,
		Title:   m.Title,
		Genre: domain.Genre{
			GenreID: m.GenreID,
			Name:    m.GenreName,
		},
		NumberInStock:   m.NumberInStock,
		DailyRentalRate: m.DailyRentalRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveMovie inserts a new movie.
func (r *PgxMovieRepository) SaveMovie(ctx context.Context, movie domain.Movie) error {
	m := toModelMovie(movie)

	query := `
		INSERT INTO movies (movie_id, title, genre_id, genre_name, number_in_stock, daily_rental_rate, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.MovieID, m.Title, m.GenreID, m.GenreName, m.NumberInStock, m.DailyRentalRate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: movie with ID %s already exists", apperrors.ErrDuplicate, m.MovieID)
		}
		return fmt.Errorf("failed to save movie %s: %w", m.MovieID, err)
	}
	return nil
}

// FindMovieByID retrieves a movie by its ID.
func (r *PgxMovieRepository) FindMovieByID(ctx context.Context, movieID string) (*domain.Movie, error) {
	query := `
		SELECT movie_id, title, genre_id, genre_name, number_in_stock, daily_rental_rate, created_at, created_by, last_updated_at, last_updated_by
		FROM movies
		WHERE movie_id = $1;
	`
	var m models.Movie
	err := r.pool.QueryRow(ctx, query, movieID).Scan(
		&m.MovieID, &m.Title, &m.GenreID, &m.GenreName, &m.NumberInStock, &m.DailyRentalRate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movie by ID %s: %w", movieID, err)
	}
	d := toDomainMovie(m)
	return &d, nil
}

// ListMovies retrieves a paginated list of movies ordered by title.
func (r *PgxMovieRepository) ListMovies(ctx context.Context, limit int, offset int) ([]domain.Movie, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT movie_id, title, genre_id, genre_name, number_in_stock, daily_rental_rate, created_at, created_by, last_updated_at, last_updated_by
		FROM movies
		ORDER BY title
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.MovieID, &m.Title, &m.GenreID, &m.GenreName, &m.NumberInStock, &m.DailyRentalRate,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		movies = append(movies, toDomainMovie(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating movie rows: %w", rows.Err())
	}
	return movies, nil
}

// UpdateMovie updates a movie's catalog fields. number_in_stock is deliberately
// absent from the SET list; only ReserveUnit/ReleaseUnit touch the counter.
func (r *PgxMovieRepository) UpdateMovie(ctx context.Context, movie domain.Movie) error {
	m := toModelMovie(movie)

	query := `
		UPDATE movies
		SET title = $2, genre_id = $3, genre_name = $4, daily_rental_rate = $5, last_updated_at = $6, last_updated_by = $7
		WHERE movie_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.MovieID, m.Title, m.GenreID, m.GenreName, m.DailyRentalRate, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update movie %s: %w", m.MovieID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteMovie removes a movie.
func (r *PgxMovieRepository) DeleteMovie(ctx context.Context, movieID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE movie_id = $1;`, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete movie %s: %w", movieID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReserveUnit atomically takes one unit of stock. The availability check and
// the decrement are a single guarded UPDATE, so two callers racing on the last
// unit serialize on the row and only one succeeds. Callers on different movies
// touch different rows and do not contend.
func (r *PgxMovieRepository) ReserveUnit(ctx context.Context, movieID string) (int, error) {
	query := `
		UPDATE movies
		SET number_in_stock = number_in_stock - 1
		WHERE movie_id = $1 AND number_in_stock > 0
		RETURNING number_in_stock;
	`
	var remaining int
	err := r.pool.QueryRow(ctx, query, movieID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Zero rows means either the movie is missing or its counter is
			// already at the floor; a plain existence check tells them apart.
			exists, exErr := r.movieExists(ctx, movieID)
			if exErr != nil {
				return 0, exErr
			}
			if !exists {
				return 0, apperrors.ErrNotFound
			}
			return 0, apperrors.ErrOutOfStock
		}
		return 0, fmt.Errorf("failed to reserve unit for movie %s: %w", movieID, err)
	}
	return remaining, nil
}

// ReleaseUnit atomically puts one unit back. No upper-bound guard: each call
// corresponds 1:1 to a prior successful ReserveUnit.
func (r *PgxMovieRepository) ReleaseUnit(ctx context.Context, movieID string) (int, error) {
	query := `
		UPDATE movies
		SET number_in_stock = number_in_stock + 1
		WHERE movie_id = $1
		RETURNING number_in_stock;
	`
	var remaining int
	err := r.pool.QueryRow(ctx, query, movieID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to release unit for movie %s: %w", movieID, err)
	}
	return remaining, nil
}

func (r *PgxMovieRepository) movieExists(ctx context.Context, movieID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE movie_id = $1);`, movieID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check movie existence for %s: %w", movieID, err)
	}
	return exists, nil
}
