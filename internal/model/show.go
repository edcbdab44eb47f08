package model

import "time"

// Show is a booking of one artist at one venue.  It corresponds to a
// row in the `show` table.  StartTime is stored without zone
// information and is treated as display time.
type Show struct {
	ID        uint64    // show.id
	VenueID   uint64    // show.venue_id
	ArtistID  uint64    // show.artist_id
	StartTime time.Time // show.start_time
}

// ShowListing is a show joined with the names and images of its venue
// and artist.  Repositories return it for every page that lists shows.
type ShowListing struct {
	ID              uint64
	StartTime       time.Time
	VenueID         uint64
	VenueName       string
	VenueImageLink  *string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink *string
}
