package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/api/metrics"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogService
	media   ports.MediaStorage
	log     zerolog.Logger
}

func NewCatalogHandler(catalog ports.CatalogService, media ports.MediaStorage, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, media: media, log: log}
}

type addEventForm struct {
	Title       string `form:"title"       validate:"required,max=200"`
	Description string `form:"description"`
}

// Artists lists every artist.
//
// @Summary      List artists
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Artist
// @Failure      500  {string}  string
// @Router       /artists [get]
func (h *CatalogHandler) Artists(c echo.Context) error {
	artists, err := h.catalog.ListArtists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, artists)
}

// Bands lists every band.
//
// @Summary      List bands
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Band
// @Failure      500  {string}  string
// @Router       /bands [get]
func (h *CatalogHandler) Bands(c echo.Context) error {
	bands, err := h.catalog.ListBands(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bands)
}

// Events lists every event, newest first.
//
// @Summary      List events
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      500  {string}  string
// @Router       /events [get]
func (h *CatalogHandler) Events(c echo.Context) error {
	events, err := h.catalog.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// AddEvent stores an event. When the request is logged in, the user is
// recorded as the organizer.
//
// @Summary      Add an event
// @Tags         catalog
// @Accept       multipart/form-data
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        image        formData  file    false  "Poster"
// @Success      303  "Redirect to /events"
// @Failure      500  {string}  string
// @Router       /add-event [post]
func (h *CatalogHandler) AddEvent(c echo.Context) error {
	var form addEventForm
	if err := c.Bind(&form); err != nil {
		return addEventFailed(err)
	}
	if err := c.Validate(&form); err != nil {
		return addEventFailed(err)
	}

	image, err := saveUpload(c, h.media, "image")
	if err != nil {
		return addEventFailed(err)
	}

	in := ports.AddEventInput{Title: form.Title, Description: form.Description}
	if image != nil {
		in.ImageURL = *image
	}
	if user, ok := CurrentUser(c); ok {
		id := user.ID
		in.OrganizerID = &id
	}

	if _, err := h.catalog.AddEvent(c.Request().Context(), in); err != nil {
		if image != nil {
			removeUpload(c, h.media, h.log, *image)
		}
		return addEventFailed(err)
	}

	metrics.EventsAddedTotal.Inc()
	return c.Redirect(http.StatusSeeOther, "/events")
}

// addEventFailed reports any failure of /add-event, a missing title
// included, as a server error.
func addEventFailed(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError).WithInternal(fmt.Errorf("add event: %w", err))
}
