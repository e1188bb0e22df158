package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func newProfileFixture() (*stubBandRepo, *stubEventRepo) {
	bands := &stubBandRepo{
		bands: []domain.Band{
			{ID: 3, Name: "The Threes"},
			{ID: 5, Name: "Five Alive"},
			{ID: 9, Name: "Nine Lives"},
		},
		memberships: map[int64][]int64{
			7: {9, 3},
			8: {5},
		},
	}
	events := &stubEventRepo{
		events: []domain.Event{
			{ID: 1, Title: "Open mic", OrganizerID: int64Ptr(11)},
			{ID: 2, Title: "Jazz night", OrganizerID: int64Ptr(12)},
			{ID: 3, Title: "Block party", OrganizerID: int64Ptr(11)},
			{ID: 4, Title: "Walk-in"},
		},
	}
	return bands, events
}

func TestProfileService_Musician(t *testing.T) {
	bands, events := newProfileFixture()
	svc := NewProfileService(bands, events, zerolog.Nop())
	user := &domain.User{ID: 1, Role: domain.RoleMusician}

	model, err := svc.Resolve(context.Background(), user)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if model.View != domain.ViewMusician || model.User != user {
		t.Fatalf("unexpected model: %+v", model)
	}
	if model.Bands != nil || model.Events != nil {
		t.Fatalf("musician profile must carry the user alone")
	}
	if bands.memberCalls != 0 || events.organizerCalls != 0 {
		t.Fatalf("musician profile must not query")
	}
}

func TestProfileService_BandMember(t *testing.T) {
	bands, events := newProfileFixture()
	svc := NewProfileService(bands, events, zerolog.Nop())

	model, err := svc.Resolve(context.Background(), &domain.User{ID: 7, Role: domain.RoleBandMember})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if model.View != domain.ViewBand {
		t.Fatalf("unexpected view %q", model.View)
	}

	ids := make([]int64, 0, len(model.Bands))
	for _, b := range model.Bands {
		ids = append(ids, b.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 9 {
		t.Fatalf("expected bands {3, 9}, got %v", ids)
	}
	if bands.memberCalls != 1 {
		t.Fatalf("expected exactly one supplementary query, got %d", bands.memberCalls)
	}
}

func TestProfileService_Organizer(t *testing.T) {
	bands, events := newProfileFixture()
	svc := NewProfileService(bands, events, zerolog.Nop())

	model, err := svc.Resolve(context.Background(), &domain.User{ID: 11, Role: domain.RoleEventOrganizer})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if model.View != domain.ViewOrganizer {
		t.Fatalf("unexpected view %q", model.View)
	}
	if len(model.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(model.Events))
	}
	for _, e := range model.Events {
		if e.OrganizerID == nil || *e.OrganizerID != 11 {
			t.Fatalf("event %d is not organized by user 11", e.ID)
		}
	}
}

func TestProfileService_UnknownRole(t *testing.T) {
	bands, events := newProfileFixture()
	svc := NewProfileService(bands, events, zerolog.Nop())

	for _, role := range []domain.Role{"roadie", "", "MUSICIAN"} {
		if _, err := svc.Resolve(context.Background(), &domain.User{ID: 1, Role: role}); !errors.Is(err, domain.ErrProfileNotFound) {
			t.Fatalf("role %q: expected ErrProfileNotFound, got %v", role, err)
		}
	}
}

func TestProfileService_SupplementaryQueryFailureIsInternal(t *testing.T) {
	bands, events := newProfileFixture()
	bands.err = errors.New("bands table gone")
	events.err = errors.New("events table gone")
	svc := NewProfileService(bands, events, zerolog.Nop())

	for _, role := range []domain.Role{domain.RoleBandMember, domain.RoleEventOrganizer} {
		_, err := svc.Resolve(context.Background(), &domain.User{ID: 7, Role: role})
		if err == nil || errors.Is(err, domain.ErrProfileNotFound) {
			t.Fatalf("role %q: expected internal error, got %v", role, err)
		}
	}
}
