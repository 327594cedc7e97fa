package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stylehub/backend/internal/domain/search"
)

// SearchCache stores text-search responses briefly so repeated queries skip
// the inference round trip. Image searches are never cached.
type SearchCache interface {
	// Get returns the cached results and whether the key was present.
	Get(ctx context.Context, key string) ([]search.MergedResult, bool, error)

	// Set stores the results under the key with a TTL.
	Set(ctx context.Context, key string, results []search.MergedResult, ttl time.Duration) error
}

// TextSearchKey builds a stable cache key for a text query and limit
func TextSearchKey(query string, limit int) string {
	sum := sha256.Sum256([]byte(query + "|" + strconv.Itoa(limit)))
	return hex.EncodeToString(sum[:16])
}

// RedisSearchCache implements SearchCache using Redis
type RedisSearchCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSearchCache creates a cache backed by an existing Redis client
func NewRedisSearchCache(client *redis.Client) *RedisSearchCache {
	return &RedisSearchCache{
		client:    client,
		keyPrefix: "search:text:",
	}
}

// Get returns the cached results for the key, if any
func (c *RedisSearchCache) Get(ctx context.Context, key string) ([]search.MergedResult, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read search cache: %w", err)
	}

	var results []search.MergedResult
	if err := json.Unmarshal(data, &results); err != nil {
		// Treat a corrupt entry as a miss so it gets rewritten
		return nil, false, nil
	}
	return results, true, nil
}

// Set stores the results under the key with a TTL
func (c *RedisSearchCache) Set(ctx context.Context, key string, results []search.MergedResult, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode search cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write search cache: %w", err)
	}
	return nil
}

var _ SearchCache = (*RedisSearchCache)(nil)

// InMemorySearchCache provides an in-memory implementation for testing.
type InMemorySearchCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	results   []search.MergedResult
	expiresAt time.Time
}

// NewInMemorySearchCache creates a new in-memory search cache
func NewInMemorySearchCache() *InMemorySearchCache {
	return &InMemorySearchCache{
		entries: make(map[string]inMemoryEntry),
	}
}

func (c *InMemorySearchCache) Get(_ context.Context, key string) ([]search.MergedResult, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.results, true, nil
}

func (c *InMemorySearchCache) Set(_ context.Context, key string, results []search.MergedResult, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	c.entries[key] = inMemoryEntry{
		results:   results,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

var _ SearchCache = (*InMemorySearchCache)(nil)
