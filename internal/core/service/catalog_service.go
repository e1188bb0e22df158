package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/core/domain"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

// CatalogService serves the artist, band and event listings.
type CatalogService struct {
	artists ports.ArtistRepository
	bands   ports.BandRepository
	events  ports.EventRepository
	log     zerolog.Logger
}

func NewCatalogService(artists ports.ArtistRepository, bands ports.BandRepository, events ports.EventRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{artists: artists, bands: bands, events: events, log: log}
}

func (s *CatalogService) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	artists, err := s.artists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

func (s *CatalogService) ListBands(ctx context.Context) ([]domain.Band, error) {
	bands, err := s.bands.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bands: %w", err)
	}
	return bands, nil
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *CatalogService) AddEvent(ctx context.Context, in ports.AddEventInput) (*domain.Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrInvalidInput
	}

	created, err := s.events.Create(ctx, &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		OrganizerID: in.OrganizerID,
	})
	if err != nil {
		return nil, fmt.Errorf("add event: %w", err)
	}

	s.log.Info().Int64("event_id", created.ID).Msg("event added")
	return created, nil
}
