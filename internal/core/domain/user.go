package domain

import (
	"context"
	"time"
)

// Role is the authorization level carried by a user and its tokens.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleModerator Role = "Moderator"
	RoleReadOnly  Role = "ReadOnly"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleReadOnly:
		return true
	}
	return false
}

// User models an account allowed to call the API.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Claims is the authenticated identity extracted from a bearer token.
type Claims struct {
	UserID    string
	Username  string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

type claimsKey struct{}

// ContextWithClaims attaches the authenticated identity to ctx.
func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the identity attached by ContextWithClaims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}
