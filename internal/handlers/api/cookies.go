package api

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// refreshCookie is the name of the cookie carrying the refresh token.
const refreshCookie = "refreshToken"

// setRefreshCookie stores token in an http-only cookie usable cross-site.
func setRefreshCookie(c fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

// clearRefreshCookie expires the refresh cookie with the attributes it was set with.
func clearRefreshCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}
