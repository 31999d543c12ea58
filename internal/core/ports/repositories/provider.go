package repositories

// RepositoryProvider bundles all repository facades for dependency injection.
type RepositoryProvider struct {
	Genre    GenreRepositoryFacade
	Customer CustomerRepositoryFacade
	Movie    MovieRepositoryFacade
	Rental   RentalRepositoryFacade
	User     UserRepositoryFacade
}
