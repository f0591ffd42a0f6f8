package lib

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// CacheGet returns the cached value for key, or "" when the key is missing
// or no redis is configured. Calendar reads tolerate stale or absent cache.
func CacheGet(ctx context.Context, key string) string {
	rdb := GetRedisClient()
	if rdb == nil {
		return ""
	}
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return ""
	} else if err != nil {
		log.Printf("[redis] Error retrieving value for %s: %s\n", key, err.Error())
		return ""
	}
	return val
}

func CacheSet(ctx context.Context, key, value string, ttlSeconds int64) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.Set(ctx, key, value, 0).Err(); err != nil {
		log.Printf("[redis] Failed to set value for key %s: %s\n", key, err)
		return
	}
	if ttlSeconds > 0 {
		rdb.Expire(ctx, key, time.Duration(ttlSeconds)*time.Second)
	}
}
