// Package queue defines message payloads exchanged over the message broker.
package queue

// Listing kinds carried in ListingCreatedEvent.Kind.
const (
	KindVenue  = "venue"
	KindArtist = "artist"
	KindShow   = "show"
)

// ListingCreatedEvent is published after a venue, artist or show row has
// been committed.  Consumers can log or index the new listing without
// querying the primary database.
type ListingCreatedEvent struct {
	MessageID string   `json:"message_id"`
	Kind      string   `json:"kind"`
	ID        uint64   `json:"id"`
	Name      string   `json:"name,omitempty"`
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	VenueID   uint64   `json:"venue_id,omitempty"`
	ArtistID  uint64   `json:"artist_id,omitempty"`
	StartTime string   `json:"start_time,omitempty"`
	CreatedAt string   `json:"created_at"`
}
