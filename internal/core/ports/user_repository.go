package ports

import (
	"context"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Save inserts the user when ID is zero (assigning a fresh id) and
	// updates the existing row in place otherwise. A username collision
	// yields domain.ErrUserExists.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
