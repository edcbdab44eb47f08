// Package handler exposes the HTML endpoints.  Handlers parse the request,
// call a repository or the Lister, shape the result with package view and
// render a page.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/unicode/norm"

	"github.com/iliyamo/stagebook/internal/datefmt"
	"github.com/iliyamo/stagebook/internal/middleware"
	"github.com/iliyamo/stagebook/internal/repository"
	"github.com/iliyamo/stagebook/internal/service"
)

// Handler aggregates the repositories and services the pages need.
type Handler struct {
	Venues      *repository.VenueRepo
	Artists     *repository.ArtistRepo
	Shows       *repository.ShowRepo
	Genres      *repository.GenreRepo
	Lister      *service.Lister
	FlashSecret string
	Now         func() time.Time // clock used to split past and upcoming shows
}

// Page is the data every template receives.  Data holds the page-specific
// payload.
type Page struct {
	Title string
	Flash *middleware.Flash
	Now   string
	Data  any
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

// render writes a page with the request's flash message, if any.
func (h *Handler) render(c echo.Context, code int, name, title string, data any) error {
	return c.Render(code, name, Page{
		Title: title,
		Flash: middleware.CurrentFlash(c),
		Now:   h.now().Format(datefmt.DBLayout),
		Data:  data,
	})
}

// renderNotification renders a page carrying n instead of a cookie flash.
func (h *Handler) renderNotification(c echo.Context, name string, n service.Notification) error {
	return c.Render(http.StatusOK, name, Page{
		Flash: &middleware.Flash{Category: n.Category, Message: n.Message},
		Now:   h.now().Format(datefmt.DBLayout),
	})
}

// parseID reads the :id path parameter.  A malformed id is a 404, like a
// route that does not exist.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// formText returns a form value in Unicode NFC.
func formText(c echo.Context, name string) string {
	return norm.NFC.String(c.FormValue(name))
}

// formList returns every value of a repeated form field in Unicode NFC,
// skipping blanks.
func formList(c echo.Context, name string) []string {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	var out []string
	for _, v := range params[name] {
		v = strings.TrimSpace(norm.NFC.String(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Home renders the landing page.
func (h *Handler) Home(c echo.Context) error {
	return h.render(c, http.StatusOK, "home.html", "", nil)
}

// notImplemented renders the 501 page for an edit form.
func (h *Handler) notImplemented(c echo.Context, message, back string) error {
	return h.render(c, http.StatusNotImplemented, "not_implemented.html", "Not implemented", map[string]string{
		"Message": message,
		"Back":    back,
	})
}

// flashRedirect stores a notification in the flash cookie and redirects
// to target.
func (h *Handler) flashRedirect(c echo.Context, category, message, target string) error {
	if err := middleware.SetFlash(c, h.FlashSecret, category, message); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, target)
}
