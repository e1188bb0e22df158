package ports

import (
	"context"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

// RegisterInput carries the registration form after uploads have been stored.
// Media fields hold paths returned by MediaStorage, nil when not uploaded.
type RegisterInput struct {
	Email          string
	Password       string
	Name           string
	Role           domain.Role
	Description    string
	Instrument     *string
	ProfilePicture *string
	Video          *string
	Audio          *string
}

// AuthService covers registration and the email+password strategy.
type AuthService interface {
	// Register returns domain.ErrUserExists when the email is taken.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Authenticate returns domain.ErrInvalidCredentials for both an unknown
	// email and a wrong password. Any other error is internal.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}
