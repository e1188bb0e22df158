package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/core/domain"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

// ProfileService picks the profile variant for a user's role and loads the
// data that variant needs. Each branch issues at most one query.
type ProfileService struct {
	bands  ports.BandRepository
	events ports.EventRepository
	log    zerolog.Logger
}

func NewProfileService(bands ports.BandRepository, events ports.EventRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{bands: bands, events: events, log: log}
}

func (s *ProfileService) Resolve(ctx context.Context, user *domain.User) (*domain.RenderModel, error) {
	model := &domain.RenderModel{User: user}

	switch user.Role {
	case domain.RoleMusician:
		model.View = domain.ViewMusician

	case domain.RoleBandMember:
		bands, err := s.bands.ListByMember(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve profile: list bands: %w", err)
		}
		model.View = domain.ViewBand
		model.Bands = bands

	case domain.RoleEventOrganizer:
		events, err := s.events.ListByOrganizer(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve profile: list events: %w", err)
		}
		model.View = domain.ViewOrganizer
		model.Events = events

	default:
		s.log.Warn().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("no profile view for role")
		return nil, domain.ErrProfileNotFound
	}

	return model, nil
}
