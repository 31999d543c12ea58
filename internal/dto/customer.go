package dto

import (
	"github.com/vidly/vidly_backend/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	Name   string `json:"name" binding:"required,min=5,max=50"`
	Phone  string `json:"phone" binding:"required,min=5,max=50"`
	IsGold bool   `json:"isGold"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Pointers distinguish omitted fields from zero values.
type UpdateCustomerRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=5,max=50"`
	Phone  *string `json:"phone" binding:"omitempty,min=5,max=50"`
	IsGold *bool   `json:"isGold"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsGold     bool   `json:"isGold"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		IsGold:     c.IsGold,
	}
}

// ToListCustomersResponse converts a slice of domain.Customer to response DTOs
func ToListCustomersResponse(customers []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}
