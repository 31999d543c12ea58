package models

import "github.com/shopspring/decimal"

// Movie represents a movie row in the movies table.
// The genre is denormalized into the row alongside its id so catalog reads
// never need a join.
type Movie struct {
	MovieID         string          `db:"movie_id"`
	Title           string          `db:"title"`
	GenreID         string          `db:"genre_id"`
	GenreName       string          `db:"genre_name"`
	NumberInStock   int             `db:"number_in_stock"`
	DailyRentalRate decimal.Decimal `db:"daily_rental_rate"`
	AuditFields
}
