package service

import (
	"context"
	"net/http"

	"qkart/pkg/metrics"
	"qkart/storefront-service/internal/app/storefront/entity"
	"qkart/storefront-service/internal/app/storefront/infrastructure"
)

// FetchCart загружает корзину пользователя у backend и пересчитывает
// позиции через снимок каталога
func (s *StorefrontService) FetchCart(ctx context.Context, sess *entity.Session) ([]entity.CartLineItem, error) {
	if sess == nil {
		s.notifier.Notify(entity.LevelWarning, MsgLoginRequired)
		return nil, ErrNotLoggedIn
	}

	entries, err := s.backend.FetchCart(ctx, sess.Token)
	if err != nil {
		s.notifyCartError(err)
		return nil, err
	}

	return s.setEntries(entries), nil
}

// AddToCart добавляет товар в корзину с карточки каталога
// Без сессии и при повторном добавлении уже лежащего товара запрос
// к backend не выполняется. Проверка повтора - best-effort: она
// смотрит только на загруженные позиции корзины
func (s *StorefrontService) AddToCart(ctx context.Context, sess *entity.Session, productID string) ([]entity.CartLineItem, error) {
	if sess == nil {
		s.notifier.Notify(entity.LevelWarning, MsgLoginRequired)
		metrics.CartRejections.WithLabelValues("not_logged_in").Inc()
		return nil, ErrNotLoggedIn
	}

	if s.isInCart(productID) {
		s.notifier.Notify(entity.LevelWarning, MsgAlreadyInCart)
		metrics.CartRejections.WithLabelValues("duplicate_add").Inc()
		return nil, ErrAlreadyInCart
	}

	return s.mutateCart(ctx, sess, productID, 1, "add")
}

// UpdateQuantity устанавливает количество товара в корзине
// Вызывается из панели корзины и обходит проверку повторного
// добавления: это явная корректировка, а не новое добавление
func (s *StorefrontService) UpdateQuantity(ctx context.Context, sess *entity.Session, productID string, qty int) ([]entity.CartLineItem, error) {
	if sess == nil {
		s.notifier.Notify(entity.LevelWarning, MsgLoginRequired)
		metrics.CartRejections.WithLabelValues("not_logged_in").Inc()
		return nil, ErrNotLoggedIn
	}

	return s.mutateCart(ctx, sess, productID, qty, "update")
}

// AdjustQuantity изменяет количество на delta (+1 / -1 из корзины)
// Клиент не проверяет нижнюю границу: удаление позиции при qty <= 0 -
// контракт backend
func (s *StorefrontService) AdjustQuantity(ctx context.Context, sess *entity.Session, productID string, delta int) ([]entity.CartLineItem, error) {
	s.mu.Lock()
	qty := s.quantityOf(productID) + delta
	s.mu.Unlock()

	return s.UpdateQuantity(ctx, sess, productID, qty)
}

// CartItems возвращает текущие позиции корзины
func (s *StorefrontService) CartItems() []entity.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLineItems(s.items)
}

// CartValue возвращает суммарную стоимость текущей корзины
func (s *StorefrontService) CartValue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartTotal(s.items)
}

// Summary возвращает панель "Order Details" для текущей корзины
func (s *StorefrontService) Summary() entity.OrderSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return OrderSummaryFrom(s.items)
}

// mutateCart выполняет мутацию корзины и принимает ответ backend
// как новое состояние целиком
func (s *StorefrontService) mutateCart(ctx context.Context, sess *entity.Session, productID string, qty int, operation string) ([]entity.CartLineItem, error) {
	entries, err := s.backend.MutateCart(ctx, sess.Token, productID, qty)
	if err != nil {
		metrics.CartOperations.WithLabelValues(operation, "failed").Inc()
		s.notifyCartError(err)
		return nil, err
	}

	metrics.CartOperations.WithLabelValues(operation, "success").Inc()
	items := s.setEntries(entries)

	s.publishEvent(ctx, entity.StorefrontEvent{
		EventType: entity.EventCartUpdated,
		Username:  sess.Username,
		ProductID: productID,
		Qty:       qty,
	}, productID)

	return items, nil
}

// setEntries заменяет сырые позиции корзины и пересчитывает line items
func (s *StorefrontService) setEntries(entries []entity.CartEntry) []entity.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = entries
	s.items = LineItemsFrom(entries, s.catalog)
	return copyLineItems(s.items)
}

// clearCart сбрасывает состояние корзины (логаут)
func (s *StorefrontService) clearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.items = nil
}

// isInCart проверяет наличие товара среди загруженных позиций
func (s *StorefrontService) isInCart(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// quantityOf возвращает загруженное количество товара (0, если нет)
// Вызывается под s.mu
func (s *StorefrontService) quantityOf(productID string) int {
	for _, e := range s.entries {
		if e.ProductID == productID {
			return e.Qty
		}
	}
	return 0
}

// notifyCartError применяет таксономию ошибок корзины:
// 400 с текстом от backend показывается как есть, остальное -
// как общая ошибка связи
func (s *StorefrontService) notifyCartError(err error) {
	if be, ok := infrastructure.AsBackendError(err); ok && be.StatusCode == http.StatusBadRequest && be.Message != "" {
		s.notifier.Notify(entity.LevelError, be.Message)
		return
	}
	s.notifier.Notify(entity.LevelError, MsgCartUnreachable)
}
