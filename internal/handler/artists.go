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

// ListArtists renders every artist by id.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "artists.html", "Artists", artists)
}

// SearchArtists renders artists whose name contains search_term.
func (h *Handler) SearchArtists(c echo.Context) error {
	ctx := c.Request().Context()
	term := formText(c, "search_term")
	matches, err := h.Artists.SearchByName(ctx, term)
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListAll(ctx)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "search_artists.html", "Artist search", map[string]any{
		"SearchTerm": term,
		"Results":    view.SearchArtists(matches, shows, h.now()),
	})
}

// ShowArtist renders one artist with past and upcoming shows.
func (h *Handler) ShowArtist(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return c.Redirect(http.StatusFound, "/artists")
	}
	if err != nil {
		return err
	}
	genres, err := h.Artists.Genres(ctx, id)
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByArtist(ctx, id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "show_artist.html", a.Name, view.ArtistDetail(*a, genres, shows, h.now()))
}

// CreateArtistForm renders the new-artist form.
func (h *Handler) CreateArtistForm(c echo.Context) error {
	genres, err := h.Genres.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "new_artist.html", "New artist", map[string]any{"Genres": genres})
}

// CreateArtist stores the submitted artist and renders the home page with
// the outcome.
func (h *Handler) CreateArtist(c echo.Context) error {
	n := h.Lister.CreateArtist(c.Request().Context(), service.ArtistInput{
		Name:               formText(c, "name"),
		City:               formText(c, "city"),
		State:              formText(c, "state"),
		Phone:              formText(c, "phone"),
		Genres:             formList(c, "genres"),
		ImageLink:          c.FormValue("image_link"),
		Website:            c.FormValue("website"),
		FacebookLink:       c.FormValue("facebook_link"),
		SeekingVenue:       c.FormValue("seeking_venue"),
		SeekingDescription: formText(c, "seeking_description"),
	})
	return h.renderNotification(c, "home.html", n)
}

// EditArtistForm renders the 501 page.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.notImplemented(c, "Editing artists is not implemented.", fmt.Sprintf("/artists/%d", id))
}

// EditArtist rejects the submission with a flash and returns to the artist.
func (h *Handler) EditArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.flashRedirect(c, service.CategoryError, "Editing artists is not implemented.", fmt.Sprintf("/artists/%d", id))
}
