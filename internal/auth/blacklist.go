package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// minRevocationTTL keeps an entry around even when the token is already past its expiry.
const minRevocationTTL = time.Minute

// Blacklist remembers revoked token ids until the token would have expired anyway.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func revocationTTL(until, now time.Time) time.Duration {
	ttl := until.Sub(now)
	if ttl < minRevocationTTL {
		return minRevocationTTL
	}
	return ttl
}

// RedisBlacklist stores revoked ids as expiring keys so all instances share them.
type RedisBlacklist struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisBlacklist uses "jti:" as key prefix when prefix is empty.
func NewRedisBlacklist(rdb redis.UniversalClient, prefix string) *RedisBlacklist {
	if prefix == "" {
		prefix = "jti:"
	}
	return &RedisBlacklist{rdb: rdb, prefix: prefix}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, until time.Time) error {
	return b.rdb.SetNX(ctx, b.prefix+jti, "1", revocationTTL(until, time.Now())).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, b.prefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ping checks the redis connection.
func (b *RedisBlacklist) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// MemoryBlacklist is the single-instance fallback used when no redis address is configured.
type MemoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{revoked: make(map[string]time.Time), now: time.Now}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, jti string, until time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.revoked[jti] = now.Add(revocationTTL(until, now))
	for k, exp := range b.revoked {
		if !exp.After(now) {
			delete(b.revoked, k)
		}
	}
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.revoked[jti]
	if !ok {
		return false, nil
	}
	if !exp.After(b.now()) {
		delete(b.revoked, jti)
		return false, nil
	}
	return true, nil
}
