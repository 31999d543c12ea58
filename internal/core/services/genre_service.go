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

type genreService struct {
	genreRepo portsrepo.GenreRepositoryFacade
}

// NewGenreService creates a new GenreService.
func NewGenreService(genreRepo portsrepo.GenreRepositoryFacade) portssvc.GenreSvcFacade {
	return &genreService{genreRepo: genreRepo}
}

var _ portssvc.GenreSvcFacade = (*genreService)(nil)

func (s *genreService) CreateGenre(ctx context.Context, req dto.CreateGenreRequest, creatorUserID string) (*domain.Genre, error) {
	now := time.Now().UTC()

	genre := domain.Genre{
		GenreID: uuid.NewString(),
		Name:    req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.genreRepo.SaveGenre(ctx, genre); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: genre %q already exists", apperrors.ErrDuplicate, req.Name)
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	return &genre, nil
}

func (s *genreService) GetGenreByID(ctx context.Context, genreID string) (*domain.Genre, error) {
	genre, err := s.genreRepo.FindGenreByID(ctx, genreID)
	if err != nil {
		return nil, fmt.Errorf("failed to get genre %s: %w", genreID, err)
	}
	return genre, nil
}

func (s *genreService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	genres, err := s.genreRepo.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	if genres == nil {
		return []domain.Genre{}, nil
	}
	return genres, nil
}

func (s *genreService) UpdateGenre(ctx context.Context, genreID string, req dto.UpdateGenreRequest, userID string) (*domain.Genre, error) {
	genre, err := s.genreRepo.FindGenreByID(ctx, genreID)
	if err != nil {
		return nil, fmt.Errorf("failed to find genre %s for update: %w", genreID, err)
	}

	genre.Name = req.Name
	genre.LastUpdatedAt = time.Now().UTC()
	genre.LastUpdatedBy = userID

	if err := s.genreRepo.UpdateGenre(ctx, *genre); err != nil {
		return nil, fmt.Errorf("failed to update genre %s: %w", genreID, err)
	}
	return genre, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, genreID string, userID string) error {
	if err := s.genreRepo.DeleteGenre(ctx, genreID); err != nil {
		return fmt.Errorf("failed to delete genre %s: %w", genreID, err)
	}
	return nil
}
