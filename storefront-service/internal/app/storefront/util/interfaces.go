package util

import (
	"context"
	"time"

	"qkart/storefront-service/internal/app/storefront/entity"
)

// CatalogCache интерфейс для кеширования снимка каталога в Redis
// Используется для dependency injection и упрощения тестирования
type CatalogCache interface {
	SetCatalog(ctx context.Context, products []entity.Product, ttl time.Duration) error
	GetCatalog(ctx context.Context) ([]entity.Product, error)
	DeleteCatalog(ctx context.Context) error
}
