package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is in a state that does not permit the operation.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Rental lifecycle errors. These are the typed failures the checkout/return
// operations surface to the request layer.
var (
	// ErrInvalidReference indicates an unknown customer or movie id.
	ErrInvalidReference = errors.New("invalid customer or movie reference")

	// ErrOutOfStock indicates the movie has no units available to rent.
	ErrOutOfStock = errors.New("movie is out of stock")

	// ErrRentalNotFound indicates no active rental exists for the (customer, movie) pair.
	ErrRentalNotFound = errors.New("no active rental found")

	// ErrAlreadyReturned indicates the rental has already been closed.
	ErrAlreadyReturned = errors.New("return already processed")

	// ErrInventoryInconsistency indicates a stock adjustment was issued against a
	// movie that no longer exists after a successful ledger operation. This is a
	// server-side logic error, never a client error.
	ErrInventoryInconsistency = errors.New("inventory inconsistency detected")
)

// AppError carries an HTTP-ish status code alongside a message and a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
