// Package cache stores compiled schema documents so repeat requests skip
// recompilation. Redis backs the shared deployment; NoOp stands in when no
// Redis is configured so callers never branch on cache availability.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores marshaled schema documents keyed by compilation identity.
type Cache interface {
	// Get returns the cached bytes for key and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the cache's TTL.
	Set(ctx context.Context, key string, value []byte) error

	Close() error
}

// keyPrefix namespaces schema entries next to other TelHawk Redis users.
const keyPrefix = "schema:"

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redisURL and verifies the connection with a
// ping before returning. A TTL of zero stores entries without expiry.
func NewRedisCache(redisURL string, ttl time.Duration) (Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &redisCache{client: client, ttl: ttl}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// NoOp is the cache used when Redis is disabled; every Get is a miss.
type NoOp struct{}

func (NoOp) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (NoOp) Set(ctx context.Context, key string, value []byte) error { return nil }

func (NoOp) Close() error { return nil }
