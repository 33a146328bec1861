package ports

import (
	"context"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
