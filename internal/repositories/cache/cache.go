// Package cache provides a thin JSON cache over redis used for seller balance
// snapshots and analytics rollups. It is read-through only; the database stays
// the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Service caches JSON-encoded values with a default TTL.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{client: client, ttl: defaultTTL}
}

// Set stores value under key with the given TTL; a zero TTL uses the default.
func (s *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.ttl
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get loads the value under key into dest. It returns false when the key is
// absent.
func (s *Service) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// Delete removes the given keys.
func (s *Service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// BalanceKey is the cache key for a store's balance snapshot.
func BalanceKey(storeID uint) string {
	return fmt.Sprintf("balance:store:%d", storeID)
}

// AnalyticsKey is the cache key for an analytics query.
func AnalyticsKey(sellerID, storeID uint, start, end string) string {
	return fmt.Sprintf("analytics:%d:%d:%s:%s", sellerID, storeID, start, end)
}

// Close releases the underlying redis client.
func (s *Service) Close() error {
	return s.client.Close()
}
