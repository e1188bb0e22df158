package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// @Summary      Home page
// @Tags         pages
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *PageHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}

// @Summary      About page
// @Tags         pages
// @Produce      html
// @Success      200
// @Router       /about [get]
func (h *PageHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", nil)
}
