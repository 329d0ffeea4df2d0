package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zanith/zanith-api/internal/api/middleware"
)

const sessionCookieLifetime = 365 * 24 * time.Hour

// CookiePolicy controls the attributes of the session cookie.
type CookiePolicy struct {
	// Secure marks the cookie HTTPS-only. Cross-site use (SameSite=None)
	// requires it, so insecure cookies fall back to SameSite=Lax.
	Secure bool
}

func (p CookiePolicy) sameSite() http.SameSite {
	if p.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func setSessionCookie(c echo.Context, token string, policy CookiePolicy) {
	expires := time.Now().Add(sessionCookieLifetime)
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires.UTC(),
		MaxAge:   int(sessionCookieLifetime.Seconds()),
		HttpOnly: true,
		Secure:   policy.Secure,
		SameSite: policy.sameSite(),
	})
}

func clearSessionCookie(c echo.Context, policy CookiePolicy) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   policy.Secure,
		SameSite: policy.sameSite(),
	})
}
