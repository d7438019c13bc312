package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"qkart/pkg/metrics"
	"qkart/storefront-service/internal/app/storefront/entity"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName     = "storefront-service"
	catalogCacheKey = "catalog:snapshot"
)

type RedisCatalogCache struct {
	client *redis.Client
}

func NewRedisCatalogCache(client *redis.Client) *RedisCatalogCache {
	return &RedisCatalogCache{client: client}
}

func (r *RedisCatalogCache) SetCatalog(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := r.client.Set(ctx, catalogCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, "set")
		return fmt.Errorf("failed to set catalog in cache: %w", err)
	}

	return nil
}

func (r *RedisCatalogCache) GetCatalog(ctx context.Context) ([]entity.Product, error) {
	data, err := r.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, "catalog")
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, "get")
		return nil, fmt.Errorf("failed to get catalog from cache: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	metrics.RecordCacheHit(serviceName, "catalog")
	return products, nil
}

func (r *RedisCatalogCache) DeleteCatalog(ctx context.Context) error {
	if err := r.client.Del(ctx, catalogCacheKey).Err(); err != nil {
		metrics.RecordRedisError(serviceName, "del")
		return fmt.Errorf("failed to delete catalog from cache: %w", err)
	}
	return nil
}
