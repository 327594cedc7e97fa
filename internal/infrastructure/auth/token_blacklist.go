package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist invalidates JWT tokens before their natural expiry, such as
// on logout.
type TokenBlacklist interface {
	// AddToBlacklist stores a token's JTI with a TTL equal to the token's
	// remaining lifetime.
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted reports whether a token's JTI has been revoked.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklist creates a token blacklist backed by an existing
// Redis client.
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "token:blacklist:",
	}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

// AddToBlacklist adds a token's JTI to the blacklist
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted checks if a token's JTI is in the blacklist
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist provides an in-memory implementation for testing.
// Not suitable for multi-instance deployments.
type InMemoryTokenBlacklist struct {
	mu           sync.Mutex
	jtiBlacklist map[string]time.Time // JTI -> expiration time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		jtiBlacklist: make(map[string]time.Time),
	}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtiBlacklist[jti] = time.Now().Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiration, exists := b.jtiBlacklist[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiration) {
		delete(b.jtiBlacklist, jti)
		return false, nil
	}
	return true, nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
