package ports

import (
	"context"
	"time"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// SessionStore maps opaque session ids to principals.
// Lookup returns domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, sid string, p domain.Principal, ttl time.Duration) error
	Lookup(ctx context.Context, sid string) (domain.Principal, error)
	Delete(ctx context.Context, sid string) error
}

// SessionService is the session principal manager.
type SessionService interface {
	ToPrincipal(user *domain.User) domain.Principal
	FromPrincipal(ctx context.Context, p domain.Principal) (*domain.User, error)

	// Establish starts a session for user and returns the signed token the
	// client presents on later requests.
	Establish(ctx context.Context, user *domain.User) (string, error)
	// Resolve returns the user behind token, or domain.ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (*domain.User, error)
	Destroy(ctx context.Context, token string) error
}
