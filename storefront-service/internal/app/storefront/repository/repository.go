package repository

import (
	"context"
	"errors"
	"time"

	"qkart/storefront-service/internal/app/storefront/entity"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository - узкий порт хранения сессий витрины
// Сессия записывается при логине, читается по токену при каждом
// запросе к корзине и удаляется при логауте
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*entity.Session, error)
	Delete(ctx context.Context, token string) error
}
