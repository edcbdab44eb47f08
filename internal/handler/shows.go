package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/service"
	"github.com/iliyamo/stagebook/internal/view"
)

// ListShows renders every show in id order.
func (h *Handler) ListShows(c echo.Context) error {
	shows, err := h.Shows.ListListings(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "shows.html", "Shows", view.ShowListing(shows))
}

// CreateShowForm renders the new-show form with the known venues and
// artists to pick from.
func (h *Handler) CreateShowForm(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.Venues.ListAll(ctx)
	if err != nil {
		return err
	}
	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "new_show.html", "New show", map[string]any{
		"Venues":       venues,
		"Artists":      artists,
		"DefaultStart": h.now().Format("2006-01-02 15:04"),
	})
}

// CreateShow stores the submitted show and renders the home page with the
// outcome.
func (h *Handler) CreateShow(c echo.Context) error {
	n := h.Lister.CreateShow(c.Request().Context(), service.ShowInput{
		ArtistID:  c.FormValue("artist_id"),
		VenueID:   c.FormValue("venue_id"),
		StartTime: c.FormValue("start_time"),
	})
	return h.renderNotification(c, "home.html", n)
}
