package model

// Venue is a place that hosts shows.  It corresponds to a row in the
// `venue` table.  Optional contact columns are nullable and therefore
// pointers; nil means the column is NULL.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name (required).
//  City, State        – location used to group venues on the listing page.
//  Address            – street address (required).
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown when SeekingTalent is set.
type Venue struct {
	ID                 uint64  // venue.id
	Name               string  // venue.name
	City               string  // venue.city
	State              string  // venue.state
	Address            string  // venue.address
	Phone              *string // venue.phone (nullable)
	Website            *string // venue.website (nullable)
	ImageLink          *string // venue.image_link (nullable)
	FacebookLink       *string // venue.facebook_link (nullable)
	SeekingTalent      bool    // venue.seeking_talent
	SeekingDescription *string // venue.seeking_description (nullable)
}

// Deref returns the value behind a nullable column or "" when it is NULL.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
