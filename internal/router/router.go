// Package router registers the HTTP routes on an echo instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/handler"
	"github.com/iliyamo/stagebook/internal/web"
)

// RegisterRoutes registers the read-only pages, the health check and the
// static assets.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.GET("/", h.Home)
	e.GET("/healthz", h.Health)
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(web.Static())))))

	e.GET("/venues", h.ListVenues)
	e.GET("/venues/create", h.CreateVenueForm)
	e.GET("/venues/:id", h.ShowVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.DELETE("/venues/:id", h.DeleteVenue)

	e.GET("/artists", h.ListArtists)
	e.GET("/artists/create", h.CreateArtistForm)
	e.GET("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)

	e.GET("/shows", h.ListShows)
	e.GET("/shows/create", h.CreateShowForm)
}

// RegisterForms registers every POST endpoint.  The middlewares, typically
// the write rate limiter, apply to these routes only.
func RegisterForms(e *echo.Echo, h *handler.Handler, m ...echo.MiddlewareFunc) {
	g := e.Group("", m...)

	g.POST("/venues/search", h.SearchVenues)
	g.POST("/venues/create", h.CreateVenue)
	g.POST("/venues/:id/edit", h.EditVenue)

	g.POST("/artists/search", h.SearchArtists)
	g.POST("/artists/create", h.CreateArtist)
	g.POST("/artists/:id/edit", h.EditArtist)

	g.POST("/shows/create", h.CreateShow)
}
