package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/vidly/vidly_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds all pgx-backed repositories on a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Genre:    NewGenreRepository(pool),
		Customer: NewCustomerRepository(pool),
		Movie:    NewMovieRepository(pool),
		Rental:   NewRentalRepository(pool),
		User:     NewUserRepository(pool),
	}
}
