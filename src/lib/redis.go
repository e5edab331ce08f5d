package lib

import (
	"context"
	"encoding/json"
	"fmt"
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

func productCacheKey(id uint) string {
	return fmt.Sprintf("products:%d", id)
}

// CacheProduct stores a product payload in redis for an hour. Failures are
// logged and swallowed, the cache is best effort.
func CacheProduct(ctx context.Context, id uint, payload any) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[redis] Error marshaling product %d: %s\n", id, err.Error())
		return
	}
	if err := rdb.Set(ctx, productCacheKey(id), b, time.Hour).Err(); err != nil {
		log.Printf("[redis] Failed to cache product %d: %s\n", id, err.Error())
	}
}

// CachedProduct loads a cached product payload into out. Returns false on
// miss or any error.
func CachedProduct(ctx context.Context, id uint, out any) bool {
	rdb := GetRedisClient()
	if rdb == nil {
		return false
	}
	val, err := rdb.Get(ctx, productCacheKey(id)).Result()
	if err == redis.Nil {
		return false
	} else if err != nil {
		log.Printf("[redis] Error retrieving product %d: %s\n", id, err.Error())
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		log.Printf("[redis] Error unmarshaling product %d: %s\n", id, err.Error())
		return false
	}
	return true
}

// InvalidateProduct drops a product from the cache after a write.
func InvalidateProduct(ctx context.Context, id uint) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, productCacheKey(id)).Err(); err != nil {
		log.Printf("[redis] Failed to invalidate product %d: %s\n", id, err.Error())
	}
}
