package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"qkart/pkg/logger"
	"qkart/pkg/metrics"
	"qkart/storefront-service/internal/app/storefront/entity"
	"qkart/storefront-service/internal/app/storefront/infrastructure"
	"qkart/storefront-service/internal/app/storefront/repository"
	"qkart/storefront-service/internal/app/storefront/util"

	"github.com/google/uuid"
)

// StorefrontService - контроллер витрины QKart
// Владеет снимком каталога, видимым списком, состоянием фильтров
// и загруженной корзиной; все мутации идут через backend, и его
// ответ всегда принимается как истина (оптимистичных изменений нет)
type StorefrontService struct {
	backend   infrastructure.BackendClient
	sessions  repository.SessionRepository
	cache     util.CatalogCache
	publisher infrastructure.MessagePublisher
	notifier  Notifier

	mu      sync.Mutex
	catalog []entity.Product   // Снимок каталога: заменяется целиком
	visible []entity.Product   // Видимый список: локальные фильтры либо результат поиска
	filter  entity.FilterState // Локальное состояние фильтров
	entries []entity.CartEntry // Сырые позиции корзины от backend
	items   []entity.CartLineItem

	// Монотонный номер поискового запроса: ответы не последнего
	// выданного номера отбрасываются
	searchSeq atomic.Uint64
	debouncer *SearchDebouncer

	cacheTTL   time.Duration
	sessionTTL time.Duration
}

// NewStorefrontService создает контроллер витрины с внедрением зависимостей
func NewStorefrontService(
	backend infrastructure.BackendClient,
	sessions repository.SessionRepository,
	cache util.CatalogCache,
	publisher infrastructure.MessagePublisher,
	notifier Notifier,
	searchDebounce time.Duration,
	cacheTTL time.Duration,
	sessionTTL time.Duration,
) *StorefrontService {
	s := &StorefrontService{
		backend:    backend,
		sessions:   sessions,
		cache:      cache,
		publisher:  publisher,
		notifier:   notifier,
		cacheTTL:   cacheTTL,
		sessionTTL: sessionTTL,
	}

	// Отложенный поиск живёт дольше HTTP запроса, который его поставил
	s.debouncer = NewSearchDebouncer(searchDebounce, func(query string) {
		s.SearchNow(context.Background(), query)
	})

	return s
}

// LoadCatalog загружает снимок каталога при старте витрины
// Сначала пробует Redis кеш, при промахе идёт к backend
func (s *StorefrontService) LoadCatalog(ctx context.Context) error {
	cached, err := s.cache.GetCatalog(ctx)
	if err == nil && len(cached) > 0 {
		s.setCatalog(cached)
		return nil
	}
	if err != nil {
		logger.Warn().Err(err).Msg("catalog cache unavailable, falling back to backend")
	}

	return s.RefreshCatalog(ctx)
}

// RefreshCatalog получает свежий каталог у backend и заменяет снимок целиком
// Вызывается при старте (промах кеша) и по cron расписанию
func (s *StorefrontService) RefreshCatalog(ctx context.Context) error {
	products, err := s.backend.FetchProducts(ctx)
	if err != nil {
		if be, ok := infrastructure.AsBackendError(err); ok && be.StatusCode == http.StatusBadRequest && be.Message != "" {
			s.notifier.Notify(entity.LevelError, be.Message)
		} else {
			s.notifier.Notify(entity.LevelError, MsgBackendUnreachable)
		}
		return err
	}

	if err := s.cache.SetCatalog(ctx, products, s.cacheTTL); err != nil {
		// Снимок уже получен, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache catalog snapshot")
	}

	s.setCatalog(products)
	return nil
}

// setCatalog заменяет снимок и пересчитывает производное состояние:
// видимый список и позиции корзины
func (s *StorefrontService) setCatalog(products []entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = products
	s.visible = ApplyFilter(products, s.filter)
	s.items = LineItemsFrom(s.entries, products)
	metrics.CatalogSnapshotSize.Set(float64(len(products)))
}

// SetFilter заменяет состояние фильтров и пересчитывает видимый список
// из снимка каталога
func (s *StorefrontService) SetFilter(filter entity.FilterState) []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = filter
	s.visible = ApplyFilter(s.catalog, filter)
	return copyProducts(s.visible)
}

// Filter возвращает текущее состояние фильтров
func (s *StorefrontService) Filter() entity.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// VisibleProducts возвращает текущий видимый список товаров
func (s *StorefrontService) VisibleProducts() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProducts(s.visible)
}

// Categories возвращает уникальные категории снимка каталога
func (s *StorefrontService) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CategoriesFrom(s.catalog)
}

// Close останавливает отложенные поисковые вызовы
func (s *StorefrontService) Close() {
	s.debouncer.Stop()
}

// publishEvent отправляет аналитическое событие витрины в Kafka
// Ошибки отправки логируются и не влияют на основную операцию
func (s *StorefrontService) publishEvent(ctx context.Context, event entity.StorefrontEvent, key string) {
	event.EventID = uuid.New()
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to marshal storefront event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, key, data); err != nil {
		logger.Warn().Err(err).Str("event_type", event.EventType).Msg("failed to publish storefront event")
	}
}

func copyProducts(products []entity.Product) []entity.Product {
	out := make([]entity.Product, len(products))
	copy(out, products)
	return out
}

func copyLineItems(items []entity.CartLineItem) []entity.CartLineItem {
	out := make([]entity.CartLineItem, len(items))
	copy(out, items)
	return out
}
