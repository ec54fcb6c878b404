package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// ResultsCache stores computed interview results so repeated result fetches
// skip re-aggregation. Entries are dropped on every new submission.
type ResultsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResultsCache(rdb *redis.Client, ttl time.Duration) *ResultsCache {
	return &ResultsCache{rdb: rdb, ttl: ttl}
}

func resultsKey(interviewID int64) string {
	return fmt.Sprintf("interview:results:%d", interviewID)
}

// Get unmarshals a cached result into v. The bool reports whether a cached
// entry existed.
func (c *ResultsCache) Get(ctx context.Context, interviewID int64, v interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, resultsKey(interviewID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

func (c *ResultsCache) Set(ctx context.Context, interviewID int64, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, resultsKey(interviewID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *ResultsCache) Invalidate(ctx context.Context, interviewID int64) error {
	return c.rdb.Del(ctx, resultsKey(interviewID)).Err()
}
