package ports

import (
	"context"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// AddEventInput is the DTO for POST /add-event.
type AddEventInput struct {
	Title       string
	Description string
	ImageURL    string
	OrganizerID *int64
}

// CatalogService serves the browse pages and event creation.
type CatalogService interface {
	ListArtists(ctx context.Context) ([]domain.Artist, error)
	ListBands(ctx context.Context) ([]domain.Band, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	AddEvent(ctx context.Context, in AddEventInput) (*domain.Event, error)
}
