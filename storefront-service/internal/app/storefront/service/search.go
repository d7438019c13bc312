package service

import (
	"context"
	"errors"
	"net/http"

	"qkart/pkg/metrics"
	"qkart/storefront-service/internal/app/storefront/entity"
	"qkart/storefront-service/internal/app/storefront/infrastructure"
)

// QueueSearch ставит серверный поиск в очередь с debounce окном
// Каждый новый ввод сбрасывает окно; уходит только последний запрос
func (s *StorefrontService) QueueSearch(query string) {
	s.debouncer.Queue(query)
}

// SearchNow немедленно выполняет серверный поиск и заменяет видимый
// список результатом целиком, минуя локальные фильтры.
// Видимый список отражает последний ВЫДАННЫЙ запрос: ответ с
// устаревшим номером отбрасывается независимо от порядка завершения
func (s *StorefrontService) SearchNow(ctx context.Context, query string) []entity.Product {
	seq := s.searchSeq.Add(1)

	products, err := s.backend.SearchProducts(ctx, query)

	s.mu.Lock()
	if seq != s.searchSeq.Load() {
		// Пока ждали ответ, ушёл более новый запрос
		result := copyProducts(s.visible)
		s.mu.Unlock()
		metrics.StorefrontSearches.WithLabelValues("stale").Inc()
		return result
	}

	switch {
	case err == nil:
		s.visible = products
		metrics.StorefrontSearches.WithLabelValues("ok").Inc()
	case errors.Is(err, infrastructure.ErrSearchNotFound):
		// Ничего не найдено - это не ошибка, показываем пустой список
		s.visible = []entity.Product{}
		metrics.StorefrontSearches.WithLabelValues("empty").Inc()
	default:
		// Список остаётся как есть, пользователь видит уведомление
		if be, ok := infrastructure.AsBackendError(err); ok && be.StatusCode == http.StatusInternalServerError && be.Message != "" {
			s.notifier.Notify(entity.LevelError, be.Message)
		} else {
			s.notifier.Notify(entity.LevelError, MsgBackendUnreachable)
		}
		metrics.StorefrontSearches.WithLabelValues("failed").Inc()
	}

	result := copyProducts(s.visible)
	s.mu.Unlock()

	if err == nil || errors.Is(err, infrastructure.ErrSearchNotFound) {
		s.publishEvent(ctx, entity.StorefrontEvent{
			EventType: entity.EventSearchPerformed,
			Query:     query,
		}, query)
	}

	return result
}
