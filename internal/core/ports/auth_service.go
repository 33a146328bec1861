package ports

import (
	"context"
	"time"

	"github.com/empmanagement/employee-api/internal/core/domain"
)

// TokenAuthenticator validates a bearer token and returns its claims.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Claims, error)
}

type AuthService interface {
	TokenAuthenticator
	Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, claims *domain.Claims) error
}

// TokenRevoker tracks tokens invalidated before their expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
