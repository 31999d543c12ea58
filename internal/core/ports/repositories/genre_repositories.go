package repositories

import (
	"context"

	"github.com/vidly/vidly_backend/internal/core/domain"
)

// GenreReader defines read operations for genre data
type GenreReader interface {
	// FindGenreByID retrieves a specific genre by its unique identifier.
	FindGenreByID(ctx context.Context, genreID string) (*domain.Genre, error)

	// ListGenres retrieves all genres ordered by name.
	ListGenres(ctx context.Context) ([]domain.Genre, error)
}

// GenreWriter defines write operations for genre data
type GenreWriter interface {
	// SaveGenre persists a new genre.
	SaveGenre(ctx context.Context, genre domain.Genre) error

	// UpdateGenre updates an existing genre's name.
	UpdateGenre(ctx context.Context, genre domain.Genre) error

	// DeleteGenre removes a genre.
	DeleteGenre(ctx context.Context, genreID string) error
}

// GenreRepositoryFacade combines all genre-related repository interfaces
type GenreRepositoryFacade interface {
	GenreReader
	GenreWriter
}
