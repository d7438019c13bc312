package infrastructure

import (
	"context"

	"qkart/storefront-service/internal/app/storefront/entity"
)

// BackendClient - клиент QKart REST backend
// Backend владеет каталогом, корзинами и аутентификацией;
// витрина общается с ним только через этот интерфейс
type BackendClient interface {
	// FetchProducts получает полный каталог товаров
	FetchProducts(ctx context.Context) ([]entity.Product, error)
	// SearchProducts выполняет серверный поиск по каталогу
	// Возвращает ErrSearchNotFound, если ничего не найдено (HTTP 404)
	SearchProducts(ctx context.Context, query string) ([]entity.Product, error)
	// FetchCart получает позиции корзины пользователя
	FetchCart(ctx context.Context, token string) ([]entity.CartEntry, error)
	// MutateCart добавляет или изменяет позицию корзины
	// Возвращает актуальный список позиций после мутации
	MutateCart(ctx context.Context, token, productID string, qty int) ([]entity.CartEntry, error)
	// Login аутентифицирует пользователя и возвращает сессию
	Login(ctx context.Context, username, password string) (*entity.Session, error)
}

// MessagePublisher интерфейс для отправки событий витрины (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
