// Package view reshapes repository rows into the structures the HTML pages
// render.  Every function is pure: the clock is passed in as now and nothing
// touches the database.
package view

import (
	"sort"
	"time"

	"github.com/iliyamo/stagebook/internal/model"
)

// Summary is one entity line on a listing or search page.
type Summary struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}

// Area groups the venues that share a city and state.
type Area struct {
	City   string
	State  string
	Venues []Summary
}

// SearchResult is the payload of a search page.
type SearchResult struct {
	Count int
	Data  []Summary
}

// isUpcoming and isPast both exclude a show that starts exactly at now.
func isUpcoming(start, now time.Time) bool { return start.After(now) }
func isPast(start, now time.Time) bool     { return start.Before(now) }

// upcomingBy counts upcoming shows per venue or artist id, as picked by key.
func upcomingBy(shows []model.Show, now time.Time, key func(model.Show) uint64) map[uint64]int {
	out := make(map[uint64]int)
	for _, s := range shows {
		if isUpcoming(s.StartTime, now) {
			out[key(s)]++
		}
	}
	return out
}

func byVenue(s model.Show) uint64  { return s.VenueID }
func byArtist(s model.Show) uint64 { return s.ArtistID }

// VenuesByLocation groups venues by (city, state) in the order each pair is
// first seen.  Venues keep their input order inside an area.
func VenuesByLocation(venues []model.Venue, shows []model.Show, now time.Time) []Area {
	counts := upcomingBy(shows, now, byVenue)
	type loc struct{ city, state string }
	index := make(map[loc]int)
	areas := make([]Area, 0)
	for _, v := range venues {
		k := loc{v.City, v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, Summary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: counts[v.ID],
		})
	}
	return areas
}

// SearchVenues builds the result page for venues already matched by name.
func SearchVenues(matches []model.Venue, shows []model.Show, now time.Time) SearchResult {
	counts := upcomingBy(shows, now, byVenue)
	data := make([]Summary, 0, len(matches))
	for _, v := range matches {
		data = append(data, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}
	return SearchResult{Count: len(data), Data: data}
}

// SearchArtists builds the result page for artists already matched by name.
func SearchArtists(matches []model.Artist, shows []model.Show, now time.Time) SearchResult {
	counts := upcomingBy(shows, now, byArtist)
	data := make([]Summary, 0, len(matches))
	for _, a := range matches {
		data = append(data, Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]})
	}
	return SearchResult{Count: len(data), Data: data}
}

// sortedByStart returns a copy of shows ordered by start time, ties kept in
// input order.
func sortedByStart(shows []model.ShowListing) []model.ShowListing {
	out := append([]model.ShowListing(nil), shows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func sortByID(shows []model.ShowListing) {
	sort.SliceStable(shows, func(i, j int) bool { return shows[i].ID < shows[j].ID })
}

func genreNames(genres []model.Genre) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		out = append(out, g.Name)
	}
	return out
}
