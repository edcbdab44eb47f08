package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// HTTPErrorHandler renders errors as HTML pages: 404.html for unknown
// routes, 500.html for failures and error.html for everything else.
// Handlers return plain errors and leave the response to it.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
		if he.Internal != nil {
			err = he.Internal
		}
	}

	if code >= http.StatusInternalServerError && code != http.StatusNotImplemented {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	var rerr error
	switch code {
	case http.StatusNotFound:
		rerr = h.render(c, code, "404.html", "Not found", nil)
	case http.StatusInternalServerError:
		rerr = h.render(c, code, "500.html", "Server error", nil)
	default:
		rerr = h.render(c, code, "error.html", http.StatusText(code), map[string]any{
			"Code":    code,
			"Message": message,
		})
	}
	if rerr != nil {
		log.Error().Err(rerr).Int("status", code).Msg("render error page failed")
		_ = c.String(code, http.StatusText(code))
	}
}
