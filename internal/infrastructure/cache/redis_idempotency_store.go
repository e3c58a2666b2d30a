package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/application/checkout"
)

// RedisIdempotencyStore implements the checkout idempotency store using
// Redis. Suitable for distributed deployments where multiple instances
// must share replay state.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisIdempotencyStore creates a store backed by an existing Redis client
func NewRedisIdempotencyStore(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = "checkout:idempotency:"
	}
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the order created under the idempotency key, if any
func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (uuid.UUID, bool, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to read idempotency key: %w", err)
	}

	orderID, err := uuid.Parse(val)
	if err != nil {
		// A corrupt value is treated as a miss rather than blocking checkout
		return uuid.Nil, false, nil
	}
	return orderID, true, nil
}

// Set records the order created under the idempotency key with a TTL
func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, orderID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, orderID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to record idempotency key: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

var _ checkout.IdempotencyStore = (*RedisIdempotencyStore)(nil)
