package view

import (
	"time"

	"github.com/iliyamo/stagebook/internal/datefmt"
	"github.com/iliyamo/stagebook/internal/model"
)

// VenueShow is a show on a venue page, described by its artist.
type VenueShow struct {
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

// ArtistShow is a show on an artist page, described by its venue.
type ArtistShow struct {
	VenueID        uint64
	VenueName      string
	VenueImageLink string
	StartTime      string
}

// VenuePage is everything the venue detail page renders.
type VenuePage struct {
	ID                 uint64
	Name               string
	Genres             []string
	Address            string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingTalent      bool
	SeekingDescription string
	ImageLink          string
	PastShows          []VenueShow
	UpcomingShows      []VenueShow
	PastShowsCount     int
	UpcomingShowsCount int
}

// ArtistPage is everything the artist detail page renders.
type ArtistPage struct {
	ID                 uint64
	Name               string
	Genres             []string
	City               string
	State              string
	Phone              string
	Website            string
	FacebookLink       string
	SeekingVenue       bool
	SeekingDescription string
	ImageLink          string
	PastShows          []ArtistShow
	UpcomingShows      []ArtistShow
	PastShowsCount     int
	UpcomingShowsCount int
}

// VenueDetail splits the venue's shows around now.  A show starting exactly
// at now is in neither list.
func VenueDetail(v model.Venue, genres []model.Genre, shows []model.ShowListing, now time.Time) VenuePage {
	p := VenuePage{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             genreNames(genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              model.Deref(v.Phone),
		Website:            model.Deref(v.Website),
		FacebookLink:       model.Deref(v.FacebookLink),
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: model.Deref(v.SeekingDescription),
		ImageLink:          model.Deref(v.ImageLink),
		PastShows:          []VenueShow{},
		UpcomingShows:      []VenueShow{},
	}
	for _, s := range sortedByStart(shows) {
		row := VenueShow{
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: model.Deref(s.ArtistImageLink),
			StartTime:       datefmt.Format(s.StartTime, datefmt.Medium),
		}
		switch {
		case isPast(s.StartTime, now):
			p.PastShows = append(p.PastShows, row)
		case isUpcoming(s.StartTime, now):
			p.UpcomingShows = append(p.UpcomingShows, row)
		}
	}
	p.PastShowsCount = len(p.PastShows)
	p.UpcomingShowsCount = len(p.UpcomingShows)
	return p
}

// ArtistDetail is VenueDetail for artists; the counterpart is the venue.
func ArtistDetail(a model.Artist, genres []model.Genre, shows []model.ShowListing, now time.Time) ArtistPage {
	p := ArtistPage{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             genreNames(genres),
		City:               a.City,
		State:              a.State,
		Phone:              model.Deref(a.Phone),
		Website:            model.Deref(a.Website),
		FacebookLink:       model.Deref(a.FacebookLink),
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: model.Deref(a.SeekingDescription),
		ImageLink:          model.Deref(a.ImageLink),
		PastShows:          []ArtistShow{},
		UpcomingShows:      []ArtistShow{},
	}
	for _, s := range sortedByStart(shows) {
		row := ArtistShow{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: model.Deref(s.VenueImageLink),
			StartTime:      datefmt.Format(s.StartTime, datefmt.Medium),
		}
		switch {
		case isPast(s.StartTime, now):
			p.PastShows = append(p.PastShows, row)
		case isUpcoming(s.StartTime, now):
			p.UpcomingShows = append(p.UpcomingShows, row)
		}
	}
	p.PastShowsCount = len(p.PastShows)
	p.UpcomingShowsCount = len(p.UpcomingShows)
	return p
}

// ShowRow is one line of the all-shows page.
type ShowRow struct {
	ID              uint64
	VenueID         uint64
	VenueName       string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

// ShowListing renders every show in id order.
func ShowListing(shows []model.ShowListing) []ShowRow {
	ordered := append([]model.ShowListing(nil), shows...)
	sortByID(ordered)
	out := make([]ShowRow, 0, len(ordered))
	for _, s := range ordered {
		out = append(out, ShowRow{
			ID:              s.ID,
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: model.Deref(s.ArtistImageLink),
			StartTime:       datefmt.Format(s.StartTime, datefmt.Medium),
		})
	}
	return out
}
