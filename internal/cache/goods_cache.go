package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"onbid-goods-api/internal/domain"
)

// GoodsListCache keeps the persisted goods list in Redis so that read
// traffic between sync cycles does not hit MySQL. The cache is optional:
// a nil *GoodsListCache is valid and every method is a no-op on it.
type GoodsListCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// GoodsCacheConfig holds configuration for the Redis goods cache.
type GoodsCacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewGoodsListCache connects to Redis and returns the cache, or an error if
// Redis is unreachable (callers may then run without a cache).
func NewGoodsListCache(cfg GoodsCacheConfig) (*GoodsListCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	log.Printf("[GoodsListCache] connected to Redis DB:%d, ttl: %v", cfg.DB, ttl)
	return &GoodsListCache{
		client: client,
		key:    "onbid:goods:list",
		ttl:    ttl,
	}, nil
}

// Get returns the cached goods list, or ok=false on miss or any Redis error.
func (c *GoodsListCache) Get(ctx context.Context) ([]domain.GoodsRecord, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[GoodsListCache] get error: %v", err)
		}
		return nil, false
	}

	var records []domain.GoodsRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[GoodsListCache] unmarshal error: %v", err)
		return nil, false
	}
	return records, true
}

// Set stores the goods list with the configured TTL. Errors are logged and
// swallowed; the cache is best-effort.
func (c *GoodsListCache) Set(ctx context.Context, records []domain.GoodsRecord) {
	if c == nil {
		return
	}

	data, err := json.Marshal(records)
	if err != nil {
		log.Printf("[GoodsListCache] marshal error: %v", err)
		return
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		log.Printf("[GoodsListCache] set error: %v", err)
	}
}

// Invalidate drops the cached list. Called after every sync cycle and every
// write to the snapshot.
func (c *GoodsListCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		log.Printf("[GoodsListCache] invalidate error: %v", err)
	}
}

// Close releases the Redis connection.
func (c *GoodsListCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
