// Package cache fronts the measurement source with the latest ward readings
// published to Redis by the AQI collector.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"aqi-notifier/internal/models"
)

const wardKeyPrefix = "aqi:ward:latest:"

// Wards reads collector-published latest readings. A nil client disables the
// cache layer without disabling the source behind it.
type Wards struct {
	rdb *redis.Client
}

// New connects a Wards cache. An empty addr returns a disabled cache.
func New(addr, password string, db int) *Wards {
	if addr == "" {
		return &Wards{}
	}
	return &Wards{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Enabled reports whether a Redis client is configured.
func (w *Wards) Enabled() bool {
	return w.rdb != nil
}

// Latest returns the cached latest reading for a ward, or nil on miss.
func (w *Wards) Latest(ctx context.Context, wardNo string) (*models.Measurement, error) {
	if w.rdb == nil {
		return nil, nil
	}

	raw, err := w.rdb.Get(ctx, wardKeyPrefix+wardNo).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached reading for ward %s: %w", wardNo, err)
	}

	var m models.Measurement
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("corrupt cached reading for ward %s: %w", wardNo, err)
	}
	return &m, nil
}

// Purge deletes every cached ward reading and returns the number of keys
// removed. Used by the clearcache binary after ward data changes.
func (w *Wards) Purge(ctx context.Context) (int, error) {
	if w.rdb == nil {
		return 0, nil
	}

	deleted := 0
	var cursor uint64
	for {
		keys, next, err := w.rdb.Scan(ctx, cursor, wardKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan ward cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := w.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete ward cache keys: %w", err)
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}

// Close releases the Redis connection.
func (w *Wards) Close() error {
	if w.rdb == nil {
		return nil
	}
	return w.rdb.Close()
}
