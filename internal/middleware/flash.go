package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/stagebook/internal/utils"
)

// FlashCookie is the cookie that carries a notification across a redirect.
const FlashCookie = "stagebook_flash"

// FlashKey is the echo context key holding the current request's *Flash.
const FlashKey = "flash"

// Flash is a notification read from the flash cookie.
type Flash struct {
	Category string
	Message  string
}

// ReadFlash moves a signed flash cookie into the context and clears it, so
// each message is shown once.  Tampered or expired cookies are dropped.
func ReadFlash(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(FlashCookie)
			if err == nil && ck.Value != "" {
				clearFlash(c)
				cat, msg, err := utils.ParseFlashToken(secret, ck.Value)
				if err != nil {
					log.Debug().Err(err).Msg("flash: dropping invalid cookie")
				} else {
					c.Set(FlashKey, &Flash{Category: cat, Message: msg})
				}
			}
			return next(c)
		}
	}
}

// CurrentFlash returns the flash read for this request, or nil.
func CurrentFlash(c echo.Context) *Flash {
	f, _ := c.Get(FlashKey).(*Flash)
	return f
}

// SetFlash signs a notification into the flash cookie for the next page.
func SetFlash(c echo.Context, secret, category, message string) error {
	tok, err := utils.NewFlashToken(secret, category, message)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    tok,
		Path:     "/",
		Expires:  time.Now().Add(utils.FlashTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearFlash(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
