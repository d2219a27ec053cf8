// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"matching-workers/internal/models"
)

// Cache stores a whole catalog so restarts can skip the source.
type Cache interface {
	Get(ctx context.Context) (models.Catalog, bool, error)
	Put(ctx context.Context, c models.Catalog) error
	Invalidate(ctx context.Context) error
}

// RedisCache keeps the catalog as one JSON value under key.
type RedisCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedisCache returns a cache under key. A zero ttl keeps the entry until
// it is invalidated.
func NewRedisCache(client redis.Cmdable, key string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, key: key, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context) (models.Catalog, bool, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Catalog{}, false, nil
	}
	if err != nil {
		return models.Catalog{}, false, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	c, err := ParseCatalog(data)
	if err != nil {
		return models.Catalog{}, false, fmt.Errorf("cached catalog %s: %w", r.key, err)
	}
	return c, true, nil
}

func (r *RedisCache) Put(ctx context.Context, c models.Catalog) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", r.key, err)
	}
	return nil
}
