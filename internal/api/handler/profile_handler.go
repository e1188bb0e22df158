package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigcircle/gigcircle/internal/api/metrics"
	"github.com/gigcircle/gigcircle/internal/core/domain"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Profile returns the role-specific profile of the logged-in user.
//
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.RenderModel
// @Success      303  "Redirect to /login when not logged in"
// @Failure      404  {string}  string
// @Failure      500  {string}  string
// @Router       /profile [get]
func (h *ProfileHandler) Profile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	model, err := h.profiles.Resolve(c.Request().Context(), user)
	if err != nil {
		return err
	}

	metrics.ProfileRendersTotal.WithLabelValues(string(model.View)).Inc()
	return c.JSON(http.StatusOK, model)
}
