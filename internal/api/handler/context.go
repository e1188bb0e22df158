package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// UserContextKey is where the session middleware leaves the resolved user.
const UserContextKey = "user"

// SetCurrentUser records the authenticated user for the rest of the request.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(UserContextKey, user)
}

// CurrentUser reports whether the request carries a principal and returns
// the user behind it.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(UserContextKey).(*domain.User)
	return user, ok && user != nil
}
