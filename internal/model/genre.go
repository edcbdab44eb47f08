package model

// Genre is a tag attached to venues and artists through the
// venue_genres and artist_genres join tables.
type Genre struct {
	ID   uint64 // genre.id
	Name string // genre.name (unique)
}
