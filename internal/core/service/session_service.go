package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/core/domain"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionService keeps the session principal. The client holds an HS256
// token naming a session id; the id maps to the principal in the store, and
// the principal is re-read from the credential store on every request.
type SessionService struct {
	users  ports.UserRepository
	store  ports.SessionStore
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSessionService(users ports.UserRepository, store ports.SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{users: users, store: store, secret: []byte(secret), ttl: ttl, log: log}
}

func (s *SessionService) ToPrincipal(user *domain.User) domain.Principal {
	return domain.Principal{UserID: user.ID}
}

// FromPrincipal re-reads the user. A missing row is domain.ErrUserNotFound.
func (s *SessionService) FromPrincipal(ctx context.Context, p domain.Principal) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("load principal %d: %w", p.UserID, err)
	}
	return user, nil
}

func (s *SessionService) Establish(ctx context.Context, user *domain.User) (string, error) {
	sid := uuid.NewString()
	if err := s.store.Save(ctx, sid, s.ToPrincipal(user), s.ttl); err != nil {
		return "", fmt.Errorf("establish session: %w", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	s.log.Debug().Int64("user_id", user.ID).Msg("session established")
	return token, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	sid, ok := s.sessionID(token)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	p, err := s.store.Lookup(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	user, err := s.FromPrincipal(ctx, p)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		// The account behind the session is gone; drop the session.
		if delErr := s.store.Delete(ctx, sid); delErr != nil {
			s.log.Warn().Err(delErr).Int64("user_id", p.UserID).Msg("failed to drop stale session")
		}
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// Destroy ends the session behind token. Tokens that do not verify name no
// session and are ignored.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	sid, ok := s.sessionID(token)
	if !ok {
		return nil
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// sessionID verifies token against the current secret. A rotated or missing
// secret therefore invalidates every token issued before.
func (s *SessionService) sessionID(token string) (string, bool) {
	if token == "" || len(s.secret) == 0 {
		return "", false
	}

	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid || claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}
