package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mesahq/mesa-api/internal/config"
)

// Cache is a thin JSON cache over Redis. A nil *Cache is a valid no-op
// cache, so the service layer never has to branch on whether Redis is
// configured.
type Cache struct {
	client *redis.Client
}

// New connects to Redis. Returns nil (no-op cache) when no address is
// configured or the connection fails; dashboards then always hit the DB.
func New(cfg *config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis unavailable, dashboard caching disabled: %v", err)
		return nil
	}

	log.Printf("Redis connected: %s", cfg.Addr)
	return &Cache{client: rdb}
}

// GetJSON loads a cached value into dest. Returns false on miss or any
// cache error; callers fall through to the database.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores a value with a TTL. Errors are ignored: caching is an
// optimization, not a dependency.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, ttl)
}

// Invalidate removes cached keys. Used by the admin bulk endpoints so
// wiped data does not linger on dashboards for a TTL.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}
