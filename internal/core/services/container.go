package services

import (
	portsrepo "github.com/vidly/vidly_backend/internal/core/ports/repositories"
	portssvc "github.com/vidly/vidly_backend/internal/core/ports/services"
	"github.com/vidly/vidly_backend/pkg/config"
)

// NewContainer creates a service container with properly initialized dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Genre = NewGenreService(repos.Genre)
	container.Customer = NewCustomerService(repos.Customer)
	container.Movie = NewMovieService(repos.Movie, repos.Genre, cfg.CatalogMaxStock)

	// Rental lifecycle sits on top of the catalog: it resolves references and
	// drives the inventory adjustments.
	container.Rental = NewRentalService(repos.Rental, repos.Movie, repos.Customer)

	container.User = NewUserService(repos.User)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	container.GoogleAuth = NewGoogleAuthService(cfg, container.User)

	return container
}
