package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vidly/vidly_backend/internal/core/domain"
)

// CreateMovieRequest defines the data needed to create a new movie.
// NumberInStock is additionally capped by the configured catalog maximum at
// the service layer.
type CreateMovieRequest struct {
	Title           string          `json:"title" binding:"required,min=5,max=50"`
	GenreID         string          `json:"genreID" binding:"required,uuid"`
	NumberInStock   int             `json:"numberInStock" binding:"min=0"`
	DailyRentalRate decimal.Decimal `json:"dailyRentalRate" binding:"required,positivedecimal"`
}

// UpdateMovieRequest defines the data allowed for updating a movie.
// The stock counter is deliberately absent: it is only ever mutated through
// the inventory adjust operations.
type UpdateMovieRequest struct {
	Title           *string          `json:"title" binding:"omitempty,min=5,max=50"`
	GenreID         *string          `json:"genreID" binding:"omitempty,uuid"`
	DailyRentalRate *decimal.Decimal `json:"dailyRentalRate" binding:"omitempty,positivedecimal"`
}

// ListMoviesParams defines query parameters for listing movies.
type ListMoviesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// MovieResponse defines the data returned for a movie.
type MovieResponse struct {
	MovieID         string          `json:"movieID"`
	Title           string          `json:"title"`
	Genre           GenreResponse   `json:"genre"`
	NumberInStock   int             `json:"numberInStock"`
	DailyRentalRate decimal.Decimal `json:"dailyRentalRate"`
}

// ToMovieResponse converts a domain.Movie to MovieResponse DTO
func ToMovieResponse(m *domain.Movie) MovieResponse {
	return MovieResponse{
		MovieID:         m.MovieID,
		Title:           m.Title,
		Genre:           ToGenreResponse(&m.Genre),
		NumberInStock:   m.NumberInStock,
		DailyRentalRate: m.DailyRentalRate,
	}
}

// ToListMoviesResponse converts a slice of domain.Movie to response DTOs
func ToListMoviesResponse(movies []domain.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i := range movies {
		out[i] = ToMovieResponse(&movies[i])
	}
	return out
}
