package service

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// VenueInput is the flat form submission for a new venue.
type VenueInput struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	Genres             []string
	ImageLink          string
	Website            string
	FacebookLink       string
	SeekingTalent      string // "y" or "n"
	SeekingDescription string
}

// Validate checks required fields and column widths.
func (in VenueInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.RuneLength(0, 255)),
		validation.Field(&in.City, validation.Required.Error("city is required"), validation.RuneLength(0, 120)),
		validation.Field(&in.State, validation.Required.Error("state is required"), validation.RuneLength(0, 120)),
		validation.Field(&in.Address, validation.Required.Error("address is required"), validation.RuneLength(0, 120)),
		validation.Field(&in.Phone, validation.RuneLength(0, 120)),
		validation.Field(&in.Website, validation.RuneLength(0, 120)),
		validation.Field(&in.FacebookLink, validation.RuneLength(0, 120)),
		validation.Field(&in.ImageLink, validation.RuneLength(0, 500)),
		validation.Field(&in.SeekingDescription, validation.RuneLength(0, 500)),
	)
}

func (in VenueInput) trimmed() VenueInput {
	for _, f := range []*string{&in.Name, &in.City, &in.State, &in.Address, &in.Phone,
		&in.ImageLink, &in.Website, &in.FacebookLink, &in.SeekingDescription} {
		*f = strings.TrimSpace(*f)
	}
	return in
}

// ArtistInput is the flat form submission for a new artist.
type ArtistInput struct {
	Name               string
	City               string
	State              string
	Phone              string
	Genres             []string
	ImageLink          string
	Website            string
	FacebookLink       string
	SeekingVenue       string // "y" or "n"
	SeekingDescription string
}

// Validate checks required fields and column widths.
func (in ArtistInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.RuneLength(0, 255)),
		validation.Field(&in.City, validation.Required.Error("city is required"), validation.RuneLength(0, 120)),
		validation.Field(&in.State, validation.Required.Error("state is required"), validation.RuneLength(0, 120)),
		validation.Field(&in.Phone, validation.RuneLength(0, 120)),
		validation.Field(&in.Website, validation.RuneLength(0, 120)),
		validation.Field(&in.FacebookLink, validation.RuneLength(0, 120)),
		validation.Field(&in.ImageLink, validation.RuneLength(0, 500)),
		validation.Field(&in.SeekingDescription, validation.RuneLength(0, 500)),
	)
}

func (in ArtistInput) trimmed() ArtistInput {
	for _, f := range []*string{&in.Name, &in.City, &in.State, &in.Phone,
		&in.ImageLink, &in.Website, &in.FacebookLink, &in.SeekingDescription} {
		*f = strings.TrimSpace(*f)
	}
	return in
}

var idPattern = regexp.MustCompile(`^[0-9]+$`)

// ShowInput is the flat form submission for a new show.
type ShowInput struct {
	ArtistID  string
	VenueID   string
	StartTime string
}

// Validate checks that both ids are numeric and a start time is present.
// Whether the time parses is decided by the formatter.
func (in ShowInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ArtistID,
			validation.Required.Error("artist_id is required"),
			validation.Match(idPattern).Error("artist_id must be a number")),
		validation.Field(&in.VenueID,
			validation.Required.Error("venue_id is required"),
			validation.Match(idPattern).Error("venue_id must be a number")),
		validation.Field(&in.StartTime, validation.Required.Error("start_time is required")),
	)
}

func (in ShowInput) trimmed() ShowInput {
	in.ArtistID = strings.TrimSpace(in.ArtistID)
	in.VenueID = strings.TrimSpace(in.VenueID)
	in.StartTime = strings.TrimSpace(in.StartTime)
	return in
}

// seeking reads a "y"/"n" checkbox value.  Anything else keeps the column
// default of false.
func seeking(v string) bool {
	return strings.TrimSpace(v) == "y"
}

// optional maps an empty form field to NULL.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
