package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - redirects unauthenticated requests to /login,
//   - answers known client errors with their status text,
//   - logs anything else and answers a generic 500.
//
// Bodies are plain text; causes never reach the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthenticated) {
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.String(code, http.StatusText(code))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) int {
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	switch {
	// Echo's own errors (router 404/405, body limit, bad binds).
	case errors.As(err, &he):
		code = he.Code
	case errors.Is(err, domain.ErrProfileNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		code = http.StatusBadRequest
	}
	if code < http.StatusInternalServerError {
		return code
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return code
}
