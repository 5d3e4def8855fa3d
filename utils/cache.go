// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"padelwatch/config"

	"github.com/go-redis/redis/v8"
)

// QueryCacheClient holds the ad hoc availability snapshots of the on-demand
// query surface (one entry per distinct query criteria, replaced per query).
var QueryCacheClient *redis.Client

// InitQueryCache initializes the Redis client for query snapshot caching.
func InitQueryCache() {
	QueryCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := QueryCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Query Cache): %v", err)
	}
}

// GetQueryCacheClient returns the query snapshot cache client.
func GetQueryCacheClient() *redis.Client {
	if QueryCacheClient == nil {
		InitQueryCache()
	}
	return QueryCacheClient
}
