package models

// Genre represents a genre row in the genres table.
type Genre struct {
	GenreID string `db:"genre_id"`
	Name    string `db:"name"`
	AuditFields
}
