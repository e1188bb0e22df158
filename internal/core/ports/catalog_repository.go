package ports

import (
	"context"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// BandRepository reads bands and memberships.
type BandRepository interface {
	List(ctx context.Context) ([]domain.Band, error)
	// ListByMember returns the bands joined to userID through the membership
	// relation. Order is not defined.
	ListByMember(ctx context.Context, userID int64) ([]domain.Band, error)
}

// EventRepository persists and reads events.
type EventRepository interface {
	// List returns every event, newest first.
	List(ctx context.Context) ([]domain.Event, error)
	ListByOrganizer(ctx context.Context, organizerID int64) ([]domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
}

// ArtistRepository reads the artist listing.
type ArtistRepository interface {
	List(ctx context.Context) ([]domain.Artist, error)
}
