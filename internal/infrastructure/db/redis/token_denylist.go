package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// minRevocationTTL keeps a revocation around briefly even for tokens that are
// about to expire, covering clock skew between API instances.
const minRevocationTTL = time.Minute

// TokenDenylist records revoked token ids in Redis.
// Key format: revoked:<jti>
type TokenDenylist struct {
	client *redis.Client
	now    func() time.Time
}

// NewTokenDenylist creates a TokenDenylist wrapping the given Redis client.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client, now: time.Now}
}

// Revoke marks tokenID as revoked until the token's own expiry.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if err := d.client.Set(ctx, revokedKey(tokenID), "1", d.ttl(until)).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (d *TokenDenylist) ttl(until time.Time) time.Duration {
	ttl := until.Sub(d.now())
	if ttl < minRevocationTTL {
		return minRevocationTTL
	}
	return ttl
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}
