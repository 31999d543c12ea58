package services

import (
	"context"
	"time"

	"github.com/vidly/vidly_backend/internal/core/domain"
)

// TokenSvcFacade issues access tokens for authenticated staff.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// along with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleAuthSvcFacade exchanges Google credentials for a local user session.
type GoogleAuthSvcFacade interface {
	// ExchangeIDToken validates the Google-issued ID token and resolves the
	// corresponding staff user, creating one on first sign-in.
	ExchangeIDToken(ctx context.Context, idToken string) (*domain.User, error)

	// ExchangeAuthCode trades an OAuth authorization code for Google tokens,
	// validates the embedded ID token, and resolves the staff user. Used by
	// web frontends running the authorization-code flow.
	ExchangeAuthCode(ctx context.Context, code string) (*domain.User, error)
}
