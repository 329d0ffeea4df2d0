package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zanith/zanith-api/internal/core/domain"
)

// httpError converts known domain errors into echo HTTP errors. Anything
// else is returned unchanged for the central error handler to log as a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, domain.ErrSongNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "song not found").SetInternal(err)
	case errors.Is(err, domain.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found").SetInternal(err)
	case errors.Is(err, domain.ErrSongExists):
		return echo.NewHTTPError(http.StatusConflict, "song already exists").SetInternal(err)
	case errors.Is(err, domain.ErrCommentExists):
		return echo.NewHTTPError(http.StatusConflict, "comment id already used").SetInternal(err)
	case errors.Is(err, domain.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, "username already taken").SetInternal(err)
	case errors.Is(err, domain.ErrEmptyComment):
		return echo.NewHTTPError(http.StatusBadRequest, "comment cannot be empty").SetInternal(err)
	case errors.Is(err, domain.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	case errors.Is(err, domain.ErrSignatureMismatch):
		return echo.NewHTTPError(http.StatusForbidden, "upload signature mismatch").SetInternal(err)
	case errors.Is(err, domain.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusForbidden, "forbidden").SetInternal(err)
	}
	return err
}
