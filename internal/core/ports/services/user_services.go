package services

import (
	"context"

	"github.com/vidly/vidly_backend/internal/core/domain"
	"github.com/vidly/vidly_backend/internal/dto"
)

// UserReaderSvc defines read operations for staff users
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for staff users
type UserWriterSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthenticatorSvc verifies staff credentials.
type UserAuthenticatorSvc interface {
	// AuthenticateUser checks email/password and returns the user on success.
	// It returns apperrors.ErrUnauthorized for unknown emails and bad
	// passwords alike.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateFederatedUser resolves a user signing in through an external
	// identity provider, creating the account on first sign-in.
	FindOrCreateFederatedUser(ctx context.Context, email, name string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
