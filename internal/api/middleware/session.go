package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zanith/zanith-api/internal/core/domain"
	"github.com/zanith/zanith-api/internal/core/ports"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "sessionId"

// Context keys set on authenticated requests.
const (
	ContextUsername  = "username"
	ContextSessionID = "session_id"
)

// Authenticator resolves a session token to its owner.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (ports.Identity, error)
}

// Session rejects requests whose sessionId cookie does not belong to any
// user and injects the resolved identity into the context otherwise. A
// missing cookie and an unknown token are indistinguishable to the client.
func Session(auth Authenticator) echo.MiddlewareFunc {
	return resolve(auth, true)
}

// OptionalSession injects the identity when the cookie resolves and lets the
// request through without one when it does not. Store failures still abort.
func OptionalSession(auth Authenticator) echo.MiddlewareFunc {
	return resolve(auth, false)
}

func resolve(auth Authenticator, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var token string
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				token = cookie.Value
			}

			id, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					return err
				}
				if required {
					return echo.NewHTTPError(http.StatusForbidden, "forbidden")
				}
				return next(c)
			}

			c.Set(ContextUsername, id.Username)
			c.Set(ContextSessionID, id.Token)

			return next(c)
		}
	}
}
