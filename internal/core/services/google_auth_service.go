package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/vidly/vidly_backend/internal/apperrors"
	"github.com/vidly/vidly_backend/internal/core/domain"
	portssvc "github.com/vidly/vidly_backend/internal/core/ports/services"
	"github.com/vidly/vidly_backend/pkg/config"
)

type googleAuthService struct {
	clientID     string
	oauth2Config *oauth2.Config
	users        portssvc.UserAuthenticatorSvc
}

// NewGoogleAuthService creates a new GoogleAuthService.
func NewGoogleAuthService(cfg *config.Config, users portssvc.UserAuthenticatorSvc) portssvc.GoogleAuthSvcFacade {
	return &googleAuthService{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		users: users,
	}
}

var _ portssvc.GoogleAuthSvcFacade = (*googleAuthService)(nil)

// ExchangeIDToken validates a Google-issued ID token against the configured
// client ID and resolves the local staff user, creating one on first sign-in.
func (s *googleAuthService) ExchangeIDToken(ctx context.Context, idTokenString string) (*domain.User, error) {
	if s.clientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthorized, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: google ID token carries no email claim", apperrors.ErrUnauthorized)
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}

	user, err := s.users.FindOrCreateFederatedUser(ctx, email, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve federated user: %w", err)
	}
	return user, nil
}

// ExchangeAuthCode trades an authorization code for Google tokens and then
// funnels the embedded ID token through the same validation path as
// ExchangeIDToken.
func (s *googleAuthService) ExchangeAuthCode(ctx context.Context, code string) (*domain.User, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange oauth code: %v", apperrors.ErrUnauthorized, err)
	}

	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return nil, fmt.Errorf("%w: google token response carries no ID token", apperrors.ErrUnauthorized)
	}

	return s.ExchangeIDToken(ctx, idTokenString)
}
