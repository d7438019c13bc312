package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product представляет товар из каталога QKart backend
// Каталожная запись создаётся backend-ом и не изменяется витриной
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   int     `json:"rating"` // Оценка товара от 0 до 5
	Image    string  `json:"image"`
}

// CartEntry представляет позицию корзины как её хранит backend
// Backend возвращает полный актуальный список после каждой мутации
type CartEntry struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CartLineItem - позиция корзины, обогащённая данными каталога
// Производная структура: пересчитывается при каждом изменении
// каталога или корзины и нигде не сохраняется
type CartLineItem struct {
	Product
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Session представляет авторизованную сессию пользователя витрины
// Токен выдаётся backend-ом при логине и непрозрачен для витрины
type Session struct {
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// SortKey задаёт порядок сортировки видимого списка товаров
type SortKey string

const (
	SortNone           SortKey = ""
	SortPriceHighToLow SortKey = "PRICE_HIGH_TO_LOW"
	SortPriceLowToHigh SortKey = "PRICE_LOW_TO_HIGH"
	SortRating         SortKey = "RATING"
)

// Valid сообщает, является ли значение допустимым ключом сортировки
func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortPriceHighToLow, SortPriceLowToHigh, SortRating:
		return true
	}
	return false
}

// FilterState - локальное состояние фильтров витрины
// Пустое значение на любом этапе означает отсутствие фильтра
type FilterState struct {
	SearchText       string  `json:"search_text"`
	SelectedCategory string  `json:"selected_category"`
	SortKey          SortKey `json:"sort_key"`
}

// NotificationLevel - уровень уведомления пользователя
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// Notification - уведомление, которое витрина показывает пользователю
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

// Типы событий витрины для Kafka
const (
	EventUserLoggedIn    = "USER_LOGGED_IN"
	EventSearchPerformed = "SEARCH_PERFORMED"
	EventCartUpdated     = "CART_UPDATED"
)

// StorefrontEvent представляет аналитическое событие витрины для Kafka
type StorefrontEvent struct {
	EventType string    `json:"event_type"`
	EventID   uuid.UUID `json:"event_id"`
	Username  string    `json:"username,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
	Qty       int       `json:"qty,omitempty"`
	Query     string    `json:"query,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
