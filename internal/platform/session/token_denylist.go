// Package session provides Redis-backed token revocation for logout.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist implements usecase.TokenDenylist and jwtmw.DenylistChecker
// using Redis. A denied entry lives only as long as the token itself would
// have remained valid, so the list never grows beyond outstanding tokens.
type TokenDenylist struct {
	client *redis.Client
	prefix string
}

// NewTokenDenylist creates a new TokenDenylist instance.
// If prefix is empty, "denylist" is used.
func NewTokenDenylist(client *redis.Client, prefix string) *TokenDenylist {
	if prefix == "" {
		prefix = "denylist"
	}
	return &TokenDenylist{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key for a denied token ID.
func (d *TokenDenylist) tokenKey(tokenID string) string {
	return fmt.Sprintf("%s:%s", d.prefix, tokenID)
}

// Deny marks a token ID as revoked for the remaining validity of the token.
func (d *TokenDenylist) Deny(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired tokens need no entry
		return nil
	}
	return d.client.Set(ctx, d.tokenKey(tokenID), "1", ttl).Err()
}

// IsDenied reports whether a token ID has been revoked.
func (d *TokenDenylist) IsDenied(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.tokenKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
