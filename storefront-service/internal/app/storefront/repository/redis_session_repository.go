package repository

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
	serviceName      = "storefront-service"
	sessionKeyPrefix = "session:"
)

type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository создает новый Redis репозиторий сессий
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

// Save сохраняет сессию по ключу session:<token> с TTL
func (r *redisSessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := sessionKeyPrefix + session.Token
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, "set")
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}

	return nil
}

// Get читает сессию по токену
// Возвращает ErrSessionNotFound для неизвестного или истекшего токена
func (r *redisSessionRepository) Get(ctx context.Context, token string) (*entity.Session, error) {
	key := sessionKeyPrefix + token

	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		metrics.RecordRedisError(serviceName, "get")
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete удаляет сессию (логаут)
func (r *redisSessionRepository) Delete(ctx context.Context, token string) error {
	key := sessionKeyPrefix + token

	if err := r.client.Del(ctx, key).Err(); err != nil {
		metrics.RecordRedisError(serviceName, "del")
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}

	return nil
}
