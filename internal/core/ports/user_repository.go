package ports

import (
	"context"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// UserRepository is the credential store.
//
// Implementations return domain.ErrUserNotFound when no row matches and
// domain.ErrUserExists when an insert hits the email uniqueness constraint.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create inserts the user and returns the stored row, id included.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
