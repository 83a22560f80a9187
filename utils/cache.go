// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"profilewizard/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client. Nil when Redis is disabled.
var CacheClient *redis.Client

// InitCache connects the generic Redis cache client (REDIS_CACHE_DB).
func InitCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the generic cache client, or nil if InitCache was not
// called or failed.
func GetCacheClient() *redis.Client {
	return CacheClient
}
