package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/api/handler"
	"github.com/gigcircle/gigcircle/internal/core/domain"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

// Session resolves the session cookie into the current user before the
// handler runs. Requests without a valid session continue anonymously; a
// cookie that no longer resolves is cleared.
func Session(sessions ports.SessionService, cookie handler.CookieConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(cookie.Name)
			if err != nil || ck.Value == "" {
				return next(c)
			}

			user, err := sessions.Resolve(c.Request().Context(), ck.Value)
			switch {
			case err == nil:
				handler.SetCurrentUser(c, user)
			case errors.Is(err, domain.ErrUnauthenticated):
				log.Debug().Str("path", c.Request().URL.Path).Msg("discarding stale session cookie")
				handler.ClearSessionCookie(c, cookie)
			default:
				return err
			}

			return next(c)
		}
	}
}

// RequireAuth sends requests without a principal to loginPath.
func RequireAuth(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := handler.CurrentUser(c); !ok {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}
