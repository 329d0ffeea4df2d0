package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zanith/zanith-api/internal/api/middleware"
	"github.com/zanith/zanith-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Session middleware. An
// empty username means the middleware did not run for this route.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	username, _ := c.Get(middleware.ContextUsername).(string)
	if username == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	token, _ := c.Get(middleware.ContextSessionID).(string)
	return ports.Identity{Username: username, Token: token}, nil
}
