package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evyataryagoni/aqi2cigarette/internal/exposure"
	"github.com/evyataryagoni/aqi2cigarette/internal/models"
	"github.com/redis/go-redis/v9"
)

// BreakpointsKey is the Redis list holding one JSON encoded band per element
const BreakpointsKey = "aqi:breakpoints"

// RedisStore implements Store using Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and pings it
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// LoadBreakpoints implements Store
func (s *RedisStore) LoadBreakpoints(ctx context.Context) ([]models.Breakpoint, error) {
	values, err := s.client.LRange(ctx, BreakpointsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("Redis query failed: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrNoBreakpoints
	}

	bands := make([]models.Breakpoint, 0, len(values))
	for i, val := range values {
		var b models.Breakpoint
		if err := json.Unmarshal([]byte(val), &b); err != nil {
			return nil, fmt.Errorf("failed to decode breakpoint %d: %w", i, err)
		}
		bands = append(bands, b)
	}
	return bands, nil
}

// ReplaceBreakpoints atomically swaps the stored table for bands
func (s *RedisStore) ReplaceBreakpoints(ctx context.Context, bands []models.Breakpoint) error {
	values := make([]any, 0, len(bands))
	for _, b := range bands {
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to encode breakpoint: %w", err)
		}
		values = append(values, data)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, BreakpointsKey)
		if len(values) > 0 {
			pipe.RPush(ctx, BreakpointsKey, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}
	return nil
}

// LoadFromCSV seeds Redis from a breakpoint CSV file and returns the band count.
// The table is validated first; on failure Redis is left untouched.
func (s *RedisStore) LoadFromCSV(ctx context.Context, csvPath string) (int, error) {
	csvStore, err := NewCSVStore(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load CSV: %w", err)
	}
	defer csvStore.Close()

	bands, err := csvStore.LoadBreakpoints(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV breakpoints: %w", err)
	}

	// refuse anything the server would reject at startup
	if _, err := exposure.NewTable(bands); err != nil {
		return 0, fmt.Errorf("invalid breakpoint table in %s: %w", csvPath, err)
	}

	if err := s.ReplaceBreakpoints(ctx, bands); err != nil {
		return 0, err
	}
	return len(bands), nil
}

// IsEmpty reports whether no breakpoint table is stored yet
func (s *RedisStore) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.client.Exists(ctx, BreakpointsKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check Redis keys: %w", err)
	}
	return n == 0, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
