package repositories_test

import (
	"context"
	"testing"
	"time"

	"gamestore/internal/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func newBlacklist(t *testing.T) (*repositories.RedisTokenRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	repo := repositories.NewRedisTokenRepository(mr.Addr())
	t.Cleanup(func() { repo.Close() })
	return repo, mr
}

func TestRedisTokenRepository_RevokeAndCheck(t *testing.T) {
	repo, _ := newBlacklist(t)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "token-a")
	assert.NoError(t, err)
	assert.False(t, revoked)

	err = repo.Revoke(ctx, "token-a", time.Hour)
	assert.NoError(t, err)

	revoked, err = repo.IsRevoked(ctx, "token-a")
	assert.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens stay valid
	revoked, err = repo.IsRevoked(ctx, "token-b")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTokenRepository_EntryExpires(t *testing.T) {
	repo, mr := newBlacklist(t)
	ctx := context.Background()

	assert.NoError(t, repo.Revoke(ctx, "token-a", time.Minute))

	mr.FastForward(2 * time.Minute)

	revoked, err := repo.IsRevoked(ctx, "token-a")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTokenRepository_NonPositiveTTL(t *testing.T) {
	repo, _ := newBlacklist(t)
	ctx := context.Background()

	// An already-expired token needs no blacklist entry
	assert.NoError(t, repo.Revoke(ctx, "token-a", 0))
	assert.NoError(t, repo.Revoke(ctx, "token-b", -time.Minute))

	revoked, err := repo.IsRevoked(ctx, "token-a")
	assert.NoError(t, err)
	assert.False(t, revoked)
}
