package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist tracks revoked auth tokens until they would have expired
// anyway.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

const tokenKeyPrefix = "revoked_token:"

// RedisTokenRepository is a redis-backed TokenBlacklist.
type RedisTokenRepository struct {
	rdb *redis.Client
}

// NewRedisTokenRepository creates a TokenBlacklist backed by the redis
// server at addr.
func NewRedisTokenRepository(addr string) *RedisTokenRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisTokenRepository{rdb: rdb}
}

// Revoke marks the token as revoked for ttl. Tokens past their expiry need
// no entry, so a non-positive ttl is a no-op.
func (r *RedisTokenRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.rdb.Set(ctx, tokenKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been revoked.
func (r *RedisTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.rdb.Exists(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// Close releases the underlying redis connection.
func (r *RedisTokenRepository) Close() error {
	return r.rdb.Close()
}
