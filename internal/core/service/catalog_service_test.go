package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/core/domain"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

func TestCatalogService_Lists(t *testing.T) {
	artists := &stubArtistRepo{artists: []domain.Artist{{ID: 1, Name: "Nina"}}}
	bands := &stubBandRepo{bands: []domain.Band{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	events := &stubEventRepo{events: []domain.Event{{ID: 1, Title: "Gig"}}}
	svc := NewCatalogService(artists, bands, events, zerolog.Nop())

	if got, err := svc.ListArtists(context.Background()); err != nil || len(got) != 1 {
		t.Fatalf("ListArtists = %v, %v", got, err)
	}
	if got, err := svc.ListBands(context.Background()); err != nil || len(got) != 2 {
		t.Fatalf("ListBands = %v, %v", got, err)
	}
	if got, err := svc.ListEvents(context.Background()); err != nil || len(got) != 1 {
		t.Fatalf("ListEvents = %v, %v", got, err)
	}
}

func TestCatalogService_ListErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewCatalogService(&stubArtistRepo{err: boom}, &stubBandRepo{err: boom}, &stubEventRepo{err: boom}, zerolog.Nop())

	if _, err := svc.ListArtists(context.Background()); !errors.Is(err, boom) {
		t.Errorf("ListArtists: expected wrapped error, got %v", err)
	}
	if _, err := svc.ListBands(context.Background()); !errors.Is(err, boom) {
		t.Errorf("ListBands: expected wrapped error, got %v", err)
	}
	if _, err := svc.ListEvents(context.Background()); !errors.Is(err, boom) {
		t.Errorf("ListEvents: expected wrapped error, got %v", err)
	}
}

func TestCatalogService_AddEvent(t *testing.T) {
	events := &stubEventRepo{}
	svc := NewCatalogService(&stubArtistRepo{}, &stubBandRepo{}, events, zerolog.Nop())

	created, err := svc.AddEvent(context.Background(), ports.AddEventInput{
		Title:       "Open mic",
		Description: "Bring your own amp",
		ImageURL:    "images/image-1-poster.png",
		OrganizerID: int64Ptr(4),
	})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if created.ID == 0 || created.ImageURL != "images/image-1-poster.png" || *created.OrganizerID != 4 {
		t.Fatalf("unexpected event: %+v", created)
	}
}

func TestCatalogService_AddEvent_Validation(t *testing.T) {
	svc := NewCatalogService(&stubArtistRepo{}, &stubBandRepo{}, &stubEventRepo{}, zerolog.Nop())

	if _, err := svc.AddEvent(context.Background(), ports.AddEventInput{Title: "   "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCatalogService_AddEvent_StoreError(t *testing.T) {
	events := &stubEventRepo{createErr: errors.New("insert failed")}
	svc := NewCatalogService(&stubArtistRepo{}, &stubBandRepo{}, events, zerolog.Nop())

	if _, err := svc.AddEvent(context.Background(), ports.AddEventInput{Title: "Gig"}); err == nil {
		t.Fatalf("expected error")
	}
}
