package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gigmarket/internal/analytics"

	"github.com/redis/go-redis/v9"
)

// client is the part of redis.Cmdable the cache uses.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// ReportCache keeps analytics reports in redis as JSON with a fixed TTL.
type ReportCache struct {
	rdb client
	ttl time.Duration
}

func NewReportCache(rdb redis.Cmdable, ttl time.Duration) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl}
}

func (c *ReportCache) GetReport(ctx context.Context, key string) (*analytics.Report, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var report analytics.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode cached report %s: %w", key, err)
	}

	return &report, nil
}

func (c *ReportCache) SetReport(ctx context.Context, key string, report *analytics.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}
