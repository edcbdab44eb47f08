package model

// Artist is a performer that can be booked at venues.  It maps to the
// `artist` table.
//
// Fields:
//  ID                 – primary key identifier.
//  Name, City, State  – required descriptive columns.
//  SeekingVenue       – whether the artist is looking for venues.
//  SeekingDescription – free text shown when SeekingVenue is set.
type Artist struct {
	ID                 uint64  // artist.id
	Name               string  // artist.name
	City               string  // artist.city
	State              string  // artist.state
	Phone              *string // artist.phone (nullable)
	Website            *string // artist.website (nullable)
	ImageLink          *string // artist.image_link (nullable)
	FacebookLink       *string // artist.facebook_link (nullable)
	SeekingVenue       bool    // artist.seeking_venue
	SeekingDescription *string // artist.seeking_description (nullable)
}
