package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Health reports "ok" when the database answers a ping, and 503 otherwise.
// Load balancers poll it.
func (h *Handler) Health(c echo.Context) error {
	if err := h.Venues.DB().PingContext(c.Request().Context()); err != nil {
		log.Error().Err(err).Msg("health: database ping failed")
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
