package services

import (
	"context"

	"github.com/vidly/vidly_backend/internal/core/domain"
	"github.com/vidly/vidly_backend/internal/dto"
)

// GenreReaderSvc defines read operations for genre data
type GenreReaderSvc interface {
	GetGenreByID(ctx context.Context, genreID string) (*domain.Genre, error)
	ListGenres(ctx context.Context) ([]domain.Genre, error)
}

// GenreWriterSvc defines write operations for genre data
type GenreWriterSvc interface {
	CreateGenre(ctx context.Context, req dto.CreateGenreRequest, creatorUserID string) (*domain.Genre, error)
	UpdateGenre(ctx context.Context, genreID string, req dto.UpdateGenreRequest, userID string) (*domain.Genre, error)
	DeleteGenre(ctx context.Context, genreID string, userID string) error
}

// GenreSvcFacade combines all genre-related service interfaces
type GenreSvcFacade interface {
	GenreReaderSvc
	GenreWriterSvc
}
