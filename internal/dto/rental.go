package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vidly/vidly_backend/internal/core/domain"
)

// CheckoutRequest defines the body for opening a rental.
type CheckoutRequest struct {
	CustomerID string `json:"customerId" binding:"required,uuid"`
	MovieID    string `json:"movieId" binding:"required,uuid"`
}

// ReturnRequest defines the body for closing a rental. Same shape as
// CheckoutRequest; kept separate so the two contracts can drift independently.
type ReturnRequest struct {
	CustomerID string `json:"customerId" binding:"required,uuid"`
	MovieID    string `json:"movieId" binding:"required,uuid"`
}

// ListRentalsParams defines query parameters for listing rentals.
type ListRentalsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// RentalCustomerResponse is the customer snapshot embedded in a rental payload.
type RentalCustomerResponse struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsGold     bool   `json:"isGold"`
}

// RentalMovieResponse is the movie snapshot embedded in a rental payload.
type RentalMovieResponse struct {
	MovieID         string          `json:"movieID"`
	Title           string          `json:"title"`
	DailyRentalRate decimal.Decimal `json:"dailyRentalRate"`
}

// RentalResponse defines the data returned for a rental.
type RentalResponse struct {
	RentalID     string                 `json:"rentalID"`
	Customer     RentalCustomerResponse `json:"customer"`
	Movie        RentalMovieResponse    `json:"movie"`
	DateOut      time.Time              `json:"dateOut"`
	DateReturned *time.Time             `json:"dateReturned,omitempty"`
	RentalFee    *decimal.Decimal       `json:"rentalFee,omitempty"`
}

// ToRentalResponse converts a domain.Rental to RentalResponse DTO
func ToRentalResponse(r *domain.Rental) RentalResponse {
	return RentalResponse{
		RentalID: r.RentalID,
		Customer: RentalCustomerResponse{
			CustomerID: r.Customer.CustomerID,
			Name:       r.Customer.Name,
			Phone:      r.Customer.Phone,
			IsGold:     r.Customer.IsGold,
		},
		Movie: RentalMovieResponse{
			MovieID:         r.Movie.MovieID,
			Title:           r.Movie.Title,
			DailyRentalRate: r.Movie.DailyRentalRate,
		},
		DateOut:      r.DateOut,
		DateReturned: r.DateReturned,
		RentalFee:    r.RentalFee,
	}
}

// ToListRentalsResponse converts a slice of domain.Rental to response DTOs
func ToListRentalsResponse(rentals []domain.Rental) []RentalResponse {
	out := make([]RentalResponse, len(rentals))
	for i := range rentals {
		out[i] = ToRentalResponse(&rentals[i])
	}
	return out
}
