package domain

// Genre represents a movie genre in the catalog.
type Genre struct {
	GenreID string `json:"genreID"` // Primary Key (UUID)
	Name    string `json:"name"`
	AuditFields
}
