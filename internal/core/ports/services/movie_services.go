package services

import (
	"context"

	"github.com/vidly/vidly_backend/internal/core/domain"
	"github.com/vidly/vidly_backend/internal/dto"
)

// MovieReaderSvc defines read operations for movie catalog data
type MovieReaderSvc interface {
	GetMovieByID(ctx context.Context, movieID string) (*domain.Movie, error)
	ListMovies(ctx context.Context, limit int, offset int) ([]domain.Movie, error)
}

// MovieWriterSvc defines write operations for movie catalog data
type MovieWriterSvc interface {
	CreateMovie(ctx context.Context, req dto.CreateMovieRequest, creatorUserID string) (*domain.Movie, error)
	UpdateMovie(ctx context.Context, movieID string, req dto.UpdateMovieRequest, userID string) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, movieID string, userID string) error
}

// MovieSvcFacade combines all movie-related service interfaces
type MovieSvcFacade interface {
	MovieReaderSvc
	MovieWriterSvc
}
