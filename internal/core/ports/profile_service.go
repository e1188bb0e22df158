package ports

import (
	"context"

	"github.com/gigcircle/gigcircle/internal/core/domain"
)

type ProfileService interface {
	// Resolve returns domain.ErrProfileNotFound for roles without a view.
	Resolve(ctx context.Context, user *domain.User) (*domain.RenderModel, error)
}
