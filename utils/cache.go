// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"inkbook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient serves the slot-availability cache.
	CacheClient *redis.Client
	// IdempotencyClient is the dedicated client for booking idempotency keys.
	IdempotencyClient *redis.Client
)

// InitCache initializes the Redis client for slot-availability caching.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the slot cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitIdempotencyCache initializes the Redis client for idempotency keys.
func InitIdempotencyCache() {
	IdempotencyClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisIdempotencyDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := IdempotencyClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Idempotency): %v", err)
	}
}

// GetIdempotencyClient returns the Redis client for idempotency keys.
func GetIdempotencyClient() *redis.Client {
	if IdempotencyClient == nil {
		InitIdempotencyCache()
	}
	return IdempotencyClient
}
