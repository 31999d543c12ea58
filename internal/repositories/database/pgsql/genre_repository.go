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

type PgxGenreRepository struct {
	pool *pgxpool.Pool
}

// NewGenreRepository creates a new repository for genre data.
func NewGenreRepository(pool *pgxpool.Pool) portsrepo.GenreRepositoryFacade {
	return &PgxGenreRepository{pool: pool}
}

var _ portsrepo.GenreRepositoryFacade = (*PgxGenreRepository)(nil)

func toModelGenre(d domain.Genre) models.Genre {
	return models.Genre{
		GenreID: d.GenreID,
		Name:    d.Name,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainGenre(m models.Genre) domain.Genre {
	return domain.Genre{
		GenreID: m.GenreID,
		Name:    m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveGenre inserts a new genre.
func (r *PgxGenreRepository) SaveGenre(ctx context.Context, genre domain.Genre) error {
	m := toModelGenre(genre)

	query := `
		INSERT INTO genres (genre_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		m.GenreID, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: genre %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save genre %s: %w", m.GenreID, err)
	}
	return nil
}

// FindGenreByID retrieves a genre by its ID.
func (r *PgxGenreRepository) FindGenreByID(ctx context.Context, genreID string) (*domain.Genre, error) {
	query := `
		SELECT genre_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM genres
		WHERE genre_id = $1;
	`
	var m models.Genre
	err := r.pool.QueryRow(ctx, query, genreID).Scan(
		&m.GenreID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find genre by ID %s: %w", genreID, err)
	}
	d := toDomainGenre(m)
	return &d, nil
}

// ListGenres retrieves all genres ordered by name.
func (r *PgxGenreRepository) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	query := `
		SELECT genre_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM genres
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	genres := []domain.Genre{}
	for rows.Next() {
		var m models.Genre
		if err := rows.Scan(&m.GenreID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan genre row: %w", err)
		}
		genres = append(genres, toDomainGenre(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating genre rows: %w", rows.Err())
	}
	return genres, nil
}

// UpdateGenre updates an existing genre's name.
func (r *PgxGenreRepository) UpdateGenre(ctx context.Context, genre domain.Genre) error {
	m := toModelGenre(genre)

	query := `
		UPDATE genres
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE genre_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, m.GenreID, m.Name, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: genre %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update genre %s: %w", m.GenreID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGenre removes a genre.
func (r *PgxGenreRepository) DeleteGenre(ctx context.Context, genreID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE genre_id = $1;`, genreID)
	if err != nil {
		return fmt.Errorf("failed to delete genre %s: %w", genreID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
