package repositories

import (
	"context"

	"github.com/vidly/vidly_backend/internal/core/domain"
)

// MovieReader defines read operations for movie catalog data
type MovieReader interface {
	// FindMovieByID retrieves a specific movie by its unique identifier.
	FindMovieByID(ctx context.Context, movieID string) (*domain.Movie, error)

	// ListMovies retrieves a paginated list of movies ordered by title.
	ListMovies(ctx context.Context, limit int, offset int) ([]domain.Movie, error)
}

// MovieWriter defines write operations for movie catalog data
type MovieWriter interface {
	// SaveMovie persists a new movie.
	SaveMovie(ctx context.Context, movie domain.Movie) error

	// UpdateMovie updates an existing movie's catalog fields. It never touches
	// the stock counter; that belongs to the InventoryAdjuster operations.
	UpdateMovie(ctx context.Context, movie domain.Movie) error

	// DeleteMovie removes a movie.
	DeleteMovie(ctx context.Context, movieID string) error
}

// InventoryAdjuster is the single point of truth for the stock counter.
// Both operations must be atomic with respect to concurrent adjustments on the
// same movie: the check and the write are one conditional statement, never a
// read followed by a write.
type InventoryAdjuster interface {
	// ReserveUnit decrements number_in_stock by one if at least one unit
	// remains, returning the new count. It returns apperrors.ErrOutOfStock when
	// the counter is already zero and apperrors.ErrNotFound for an unknown movie.
	ReserveUnit(ctx context.Context, movieID string) (int, error)

	// ReleaseUnit increments number_in_stock by one, returning the new count.
	// Release is unconditional: each call corresponds 1:1 to a prior successful
	// ReserveUnit. It returns apperrors.ErrNotFound for an unknown movie.
	ReleaseUnit(ctx context.Context, movieID string) (int, error)
}

// MovieRepositoryFacade combines all movie-related repository interfaces
type MovieRepositoryFacade interface {
	MovieReader
	MovieWriter
	InventoryAdjuster
}
