package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docportal/internal/model"
)

var cheapParams = &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasherWithParams(cheapParams)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := h.Verify("s3cret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Hash("")
	assert.Error(t, err)
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewTokenManager("test-secret", time.Hour)
	m.now = func() time.Time { return now }

	raw, session, err := m.Issue(&model.User{ID: 7, Username: "ana", FullName: "Ana Perez"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.TokenID)
	assert.Equal(t, now.Add(time.Hour), session.ExpiresAt)

	got, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "ana", got.Username)
	assert.Equal(t, "Ana Perez", got.FullName)
	assert.Equal(t, session.TokenID, got.TokenID)
}

func TestTokenManager_Rejects(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewTokenManager("test-secret", time.Hour)
	m.now = func() time.Time { return now }
	raw, _, err := m.Issue(&model.User{ID: 7, Username: "ana"})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		late := NewTokenManager("test-secret", time.Hour)
		late.now = func() time.Time { return now.Add(2 * time.Hour) }
		_, err := late.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("other secret", func(t *testing.T) {
		other := NewTokenManager("another-secret", time.Hour)
		other.now = m.now
		_, err := other.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("missing secret", func(t *testing.T) {
		_, _, err := NewTokenManager("", time.Hour).Issue(&model.User{ID: 1})
		assert.Error(t, err)
	})
}

func TestRedisBlacklist(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	bl := NewRedisBlacklist(rdb, "")
	require.NoError(t, bl.Ping(ctx))

	revoked, err := bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "abc", time.Now().Add(2*time.Hour)))
	revoked, err = bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL("jti:abc")
	assert.Greater(t, ttl, time.Hour)
	assert.LessOrEqual(t, ttl, 2*time.Hour)

	mr.FastForward(3 * time.Hour)
	revoked, err = bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisBlacklist_PastExpiryKeepsMinimumTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	bl := NewRedisBlacklist(rdb, "revoked:")
	require.NoError(t, bl.Revoke(ctx, "old", time.Now().Add(-time.Hour)))
	assert.Equal(t, minRevocationTTL, mr.TTL("revoked:old"))
}

func TestMemoryBlacklist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	bl := NewMemoryBlacklist()
	bl.now = func() time.Time { return now }

	require.NoError(t, bl.Revoke(ctx, "abc", now.Add(time.Hour)))
	revoked, err := bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(61 * time.Minute)
	revoked, err = bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}
