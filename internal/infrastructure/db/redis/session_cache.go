package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zanith/zanith-api/internal/core/domain"
)

const (
	defaultSessionTTL = time.Hour

	// revokedMarker is never a valid username.
	revokedMarker = "\x00revoked"
)

// SessionCache maps session tokens to usernames in Redis.
// Key format: session:<token>
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a SessionCache whose entries expire after ttl.
// If ttl <= 0, defaultSessionTTL is used.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCache{client: client, ttl: ttl}
}

// Get returns the username cached for token, or domain.ErrSessionRevoked
// when the token was logged out.
func (c *SessionCache) Get(ctx context.Context, token string) (string, bool, error) {
	username, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("session cache get: %w", err)
	}
	if username == revokedMarker {
		return "", false, domain.ErrSessionRevoked
	}
	return username, true, nil
}

// Set caches token -> username with SET NX. An existing entry, including a
// revocation marker, is left untouched.
func (c *SessionCache) Set(ctx context.Context, token, username string) error {
	if err := c.client.SetNX(ctx, c.key(token), username, c.ttl).Err(); err != nil {
		return fmt.Errorf("session cache set: %w", err)
	}
	return nil
}

// Revoke overwrites token's entry with the revocation marker. The marker
// lives as long as a cache entry, so any fill that started before the
// logout expires no later than the marker.
func (c *SessionCache) Revoke(ctx context.Context, token string) error {
	if err := c.client.Set(ctx, c.key(token), revokedMarker, c.ttl).Err(); err != nil {
		return fmt.Errorf("session cache revoke: %w", err)
	}
	return nil
}

func (c *SessionCache) key(token string) string {
	return "session:" + token
}
