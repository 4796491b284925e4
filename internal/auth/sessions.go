package auth

import (
	"context"
	"fmt"
	"time"

	"hiremate/internal/config"
	hiremateErrors "hiremate/internal/errors"

	"github.com/redis/go-redis/v9"
)

// defaultBlacklistTTL is the retention for revoked tokens whose expiry has
// already passed
const defaultBlacklistTTL = 24 * time.Hour

// SessionStore tracks revoked token ids in Redis. A nil store disables
// revocation: tokens stay valid until they expire.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore connects to Redis when session support is enabled. Returns
// nil when disabled.
func NewSessionStore(ctx context.Context, cfg config.RedisConfig) (*SessionStore, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, hiremateErrors.NewStorageError("REDIS_UNAVAILABLE",
			"Failed to connect to Redis", err)
	}

	return &SessionStore{client: client}, nil
}

// RevokeToken blacklists a token id until its expiry
func (s *SessionStore) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	if s == nil {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = defaultBlacklistTTL
	}

	key := fmt.Sprintf("blacklist:jti:%s", jti)
	if err := s.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return hiremateErrors.NewStorageError("REVOCATION_FAILED",
			"Failed to revoke token", err)
	}

	return nil
}

// IsTokenRevoked reports whether a token id has been blacklisted
func (s *SessionStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if s == nil {
		return false, nil
	}

	key := fmt.Sprintf("blacklist:jti:%s", jti)
	result, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, hiremateErrors.NewStorageError("REVOCATION_CHECK_FAILED",
			"Failed to check token revocation", err)
	}

	return result > 0, nil
}

// Ping verifies Redis connectivity for health checks
func (s *SessionStore) Ping(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *SessionStore) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
