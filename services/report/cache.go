package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gymflow/models"

	"github.com/go-redis/redis/v8"
)

// RedisCache keeps reports in Redis under report:<memberId>:<period>.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(memberID, period string) string {
	return fmt.Sprintf("report:%s:%s", memberID, period)
}

func (c *RedisCache) Get(ctx context.Context, memberID, period string) (*models.MemberReport, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(memberID, period)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var report models.MemberReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, true, nil
}

func (c *RedisCache) Set(ctx context.Context, period string, report *models.MemberReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return c.client.Set(ctx, cacheKey(report.MemberID, period), data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, memberID, period string) error {
	return c.client.Del(ctx, cacheKey(memberID, period)).Err()
}
