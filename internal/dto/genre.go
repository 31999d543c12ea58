package dto

import (
	"github.com/vidly/vidly_backend/internal/core/domain"
)

// CreateGenreRequest defines the data needed to create a new genre.
type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,min=5,max=50"`
}

// UpdateGenreRequest defines the data allowed for updating a genre.
type UpdateGenreRequest struct {
	Name string `json:"name" binding:"required,min=5,max=50"`
}

// GenreResponse defines the data returned for a genre.
type GenreResponse struct {
	GenreID string `json:"genreID"`
	Name    string `json:"name"`
}

// ToGenreResponse converts a domain.Genre to GenreResponse DTO
func ToGenreResponse(g *domain.Genre) GenreResponse {
	return GenreResponse{
		GenreID: g.GenreID,
		Name:    g.Name,
	}
}

// ToListGenresResponse converts a slice of domain.Genre to response DTOs
func ToListGenresResponse(genres []domain.Genre) []GenreResponse {
	out := make([]GenreResponse, len(genres))
	for i := range genres {
		out[i] = ToGenreResponse(&genres[i])
	}
	return out
}
