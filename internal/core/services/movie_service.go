package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidly/vidly_backend/internal/apperrors"
	"github.com/vidly/vidly_backend/internal/core/domain"
	portsrepo "github.com/vidly/vidly_backend/internal/core/ports/repositories"
	portssvc "github.com/vidly/vidly_backend/internal/core/ports/services"
	"github.com/vidly/vidly_backend/internal/dto"
)

type movieService struct {
	movieRepo portsrepo.MovieRepositoryFacade
	genreRepo portsrepo.GenreReader
	maxStock  int
}

// NewMovieService creates a new MovieService. maxStock caps the initial stock
// a movie may be created with.
func NewMovieService(movieRepo portsrepo.MovieRepositoryFacade, genreRepo portsrepo.GenreReader, maxStock int) portssvc.MovieSvcFacade {
	return &movieService{
		movieRepo: movieRepo,
		genreRepo: genreRepo,
		maxStock:  maxStock,
	}
}

var _ portssvc.MovieSvcFacade = (*movieService)(nil)

func (s *movieService) CreateMovie(ctx context.Context, req dto.CreateMovieRequest, creatorUserID string) (*domain.Movie, error) {
	if req.NumberInStock > s.maxStock {
		return nil, fmt.Errorf("%w: numberInStock %d exceeds maximum %d", apperrors.ErrValidation, req.NumberInStock, s.maxStock)
	}
	if !req.DailyRentalRate.IsPositive() {
		return nil, fmt.Errorf("%w: dailyRentalRate must be positive", apperrors.ErrValidation)
	}

	genre, err := s.genreRepo.FindGenreByID(ctx, req.GenreID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: genre %s", apperrors.ErrInvalidReference, req.GenreID)
		}
		return nil, fmt.Errorf("failed to resolve genre %s: %w", req.GenreID, err)
	}

	now := time.Now().UTC()
	movie := domain.Movie{
		MovieID:         uuid.NewString(),
		Title:           req.Title,
		Genre:           *genre,
		NumberInStock:   req.NumberInStock,
		DailyRentalRate: req.DailyRentalRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.movieRepo.SaveMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return &movie, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*domain.Movie, error) {
	movie, err := s.movieRepo.FindMovieByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %s: %w", movieID, err)
	}
	return movie, nil
}

func (s *movieService) ListMovies(ctx context.Context, limit int, offset int) ([]domain.Movie, error) {
	movies, err := s.movieRepo.ListMovies(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	if movies == nil {
		return []domain.Movie{}, nil
	}
	return movies, nil
}

// UpdateMovie edits catalog fields only. The stock counter is not part of the
// update surface; it moves exclusively through checkout and return.
func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req dto.UpdateMovieRequest, userID string) (*domain.Movie, error) {
	movie, err := s.movieRepo.FindMovieByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie %s for update: %w", movieID, err)
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.GenreID != nil {
		genre, err := s.genreRepo.FindGenreByID(ctx, *req.GenreID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: genre %s", apperrors.ErrInvalidReference, *req.GenreID)
			}
			return nil, fmt.Errorf("failed to resolve genre %s: %w", *req.GenreID, err)
		}
		movie.Genre = *genre
	}
	if req.DailyRentalRate != nil {
		if !req.DailyRentalRate.IsPositive() {
			return nil, fmt.Errorf("%w: dailyRentalRate must be positive", apperrors.ErrValidation)
		}
		// Rate changes apply to future checkouts only; open rentals keep the
		// rate snapshotted at their checkout.
		movie.DailyRentalRate = *req.DailyRentalRate
	}
	movie.LastUpdatedAt = time.Now().UTC()
	movie.LastUpdatedBy = userID

	if err := s.movieRepo.UpdateMovie(ctx, *movie); err != nil {
		return nil, fmt.Errorf("failed to update movie %s: %w", movieID, err)
	}
	return movie, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string, userID string) error {
	if err := s.movieRepo.DeleteMovie(ctx, movieID); err != nil {
		return fmt.Errorf("failed to delete movie %s: %w", movieID, err)
	}
	return nil
}
