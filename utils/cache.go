package utils

import (
	"context"
	"fmt"
	"time"

	"gymflow/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the Redis client used for report caching.
var CacheClient *redis.Client

// InitCache connects the cache client to the configured cache database.
func InitCache() error {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := CacheClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	return nil
}

// GetCacheClient returns the cache client, or nil before InitCache.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// CloseCache releases the cache client if one was opened.
func CloseCache() error {
	if CacheClient == nil {
		return nil
	}
	return CacheClient.Close()
}
