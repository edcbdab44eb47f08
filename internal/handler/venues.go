package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/repository"
	"github.com/iliyamo/stagebook/internal/service"
	"github.com/iliyamo/stagebook/internal/view"
)

// ListVenues renders every venue grouped by city and state.
func (h *Handler) ListVenues(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.Venues.ListAll(ctx)
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListAll(ctx)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "venues.html", "Venues", view.VenuesByLocation(venues, shows, h.now()))
}

// SearchVenues renders venues whose name contains search_term, ignoring
// case.
func (h *Handler) SearchVenues(c echo.Context) error {
	ctx := c.Request().Context()
	term := formText(c, "search_term")
	matches, err := h.Venues.SearchByName(ctx, term)
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListAll(ctx)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "search_venues.html", "Venue search", map[string]any{
		"SearchTerm": term,
		"Results":    view.SearchVenues(matches, shows, h.now()),
	})
}

// ShowVenue renders one venue with its past and upcoming shows.  An
// unknown id redirects to the venue list.
func (h *Handler) ShowVenue(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return c.Redirect(http.StatusFound, "/venues")
	}
	if err != nil {
		return err
	}
	genres, err := h.Venues.Genres(ctx, id)
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByVenue(ctx, id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "show_venue.html", v.Name, view.VenueDetail(*v, genres, shows, h.now()))
}

// CreateVenueForm renders the new-venue form with one checkbox per genre.
func (h *Handler) CreateVenueForm(c echo.Context) error {
	genres, err := h.Genres.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "new_venue.html", "New venue", map[string]any{"Genres": genres})
}

// CreateVenue stores the submitted venue and renders the home page with
// the outcome.
func (h *Handler) CreateVenue(c echo.Context) error {
	n := h.Lister.CreateVenue(c.Request().Context(), service.VenueInput{
		Name:               formText(c, "name"),
		City:               formText(c, "city"),
		State:              formText(c, "state"),
		Address:            formText(c, "address"),
		Phone:              formText(c, "phone"),
		Genres:             formList(c, "genres"),
		ImageLink:          c.FormValue("image_link"),
		Website:            c.FormValue("website"),
		FacebookLink:       c.FormValue("facebook_link"),
		SeekingTalent:      c.FormValue("seeking_talent"),
		SeekingDescription: formText(c, "seeking_description"),
	})
	return h.renderNotification(c, "home.html", n)
}

// DeleteVenue is not offered; venues with shows cannot be removed.
func (h *Handler) DeleteVenue(c echo.Context) error {
	if _, err := parseID(c); err != nil {
		return err
	}
	return echo.NewHTTPError(http.StatusNotImplemented, "Deleting venues is not implemented.")
}

// EditVenueForm renders the 501 page; venues are read-only once listed.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.notImplemented(c, "Editing venues is not implemented.", fmt.Sprintf("/venues/%d", id))
}

// EditVenue rejects the submission with a flash and returns to the venue.
func (h *Handler) EditVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.flashRedirect(c, service.CategoryError, "Editing venues is not implemented.", fmt.Sprintf("/venues/%d", id))
}
