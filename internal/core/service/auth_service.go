package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/core/domain"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

// AuthService implements registration and the email+password strategy.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	media  ports.MediaStorage
	log    zerolog.Logger
}

// NewAuthService wires the credential store and hasher. media may be nil, in
// which case uploads of failed registrations are left in place.
func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, media ports.MediaStorage, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, media: media, log: log}
}

// Register checks the email is free, hashes the password and inserts the
// user. The pre-check and the insert are not atomic; a concurrent insert of
// the same email surfaces as domain.ErrUserExists from the store's unique
// constraint. Media stored for a registration that does not succeed is removed.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := s.register(ctx, in)
	if err != nil {
		s.discardMedia(ctx, in)
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

func (s *AuthService) register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email:          in.Email,
		PasswordHash:   hash,
		Name:           in.Name,
		Role:           in.Role,
		Description:    in.Description,
		Instrument:     in.Instrument,
		ProfilePicture: in.ProfilePicture,
		Video:          in.Video,
		Audio:          in.Audio,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: insert user: %w", err)
	}
	return created, nil
}

func (s *AuthService) discardMedia(ctx context.Context, in ports.RegisterInput) {
	if s.media == nil {
		return
	}
	for _, p := range []*string{in.ProfilePicture, in.Video, in.Audio} {
		if p == nil || *p == "" {
			continue
		}
		if err := s.media.Remove(ctx, *p); err != nil {
			s.log.Warn().Err(err).Str("path", *p).Msg("failed to remove orphaned upload")
		}
	}
}

// Authenticate looks the user up by exact email and verifies the password.
// An unknown email and a wrong password both yield
// domain.ErrInvalidCredentials; hasher and store failures are returned as-is
// (wrapped) so the caller can tell them apart.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Msg("login for unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !ok {
		s.log.Debug().Int64("user_id", user.ID).Msg("login with wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
