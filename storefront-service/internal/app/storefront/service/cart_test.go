package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"qkart/storefront-service/internal/app/storefront/entity"
	"qkart/storefront-service/internal/app/storefront/infrastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===================== FetchCart Tests =====================

func TestFetchCart_Success(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())

	entries := []entity.CartEntry{{ProductID: "1", Qty: 2}}
	deps.backend.On("FetchCart", ctx, sess.Token).Return(entries, nil)

	// Act
	items, err := svc.FetchCart(ctx, sess)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "iPhone XR", items[0].Name)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, 200.0, svc.CartValue())
}

func TestFetchCart_NotLoggedIn(t *testing.T) {
	// Arrange
	svc, deps := newTestService()

	// Act
	items, err := svc.FetchCart(context.Background(), nil)

	// Assert
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Nil(t, items)
	deps.backend.AssertNotCalled(t, "FetchCart", mock.Anything, mock.Anything)
}

func TestFetchCart_DropsEntriesMissingFromCatalog(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())

	entries := []entity.CartEntry{
		{ProductID: "2", Qty: 1},
		{ProductID: "deleted", Qty: 3},
	}
	deps.backend.On("FetchCart", ctx, sess.Token).Return(entries, nil)

	// Act
	items, err := svc.FetchCart(ctx, sess)

	// Assert
	// Удалённый из каталога товар молча пропадает из корзины
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ProductID)
}

// ===================== AddToCart Tests =====================

func TestAddToCart_Success(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())

	entries := []entity.CartEntry{{ProductID: "2", Qty: 1}}
	deps.backend.On("MutateCart", ctx, sess.Token, "2", 1).Return(entries, nil)
	deps.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	items, err := svc.AddToCart(ctx, sess, "2")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Basketball", items[0].Name)
	deps.backend.AssertExpectations(t)
}

func TestAddToCart_NotLoggedIn(t *testing.T) {
	// Arrange
	svc, deps := newTestService()

	// Act
	items, err := svc.AddToCart(context.Background(), nil, "2")

	// Assert
	// Без сессии запрос к backend не выполняется
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Nil(t, items)
	deps.backend.AssertNotCalled(t, "MutateCart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	notification := deps.notifier.last()
	assert.NotNil(t, notification)
	assert.Equal(t, entity.LevelWarning, notification.Level)
	assert.Equal(t, MsgLoginRequired, notification.Message)
}

func TestAddToCart_DuplicateBlocked(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())
	svc.setEntries([]entity.CartEntry{{ProductID: "2", Qty: 1}})

	// Act
	items, err := svc.AddToCart(ctx, sess, "2")

	// Assert
	// Повторное добавление лежащего в корзине товара блокируется локально
	assert.ErrorIs(t, err, ErrAlreadyInCart)
	assert.Nil(t, items)
	deps.backend.AssertNotCalled(t, "MutateCart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	notification := deps.notifier.last()
	assert.NotNil(t, notification)
	assert.Equal(t, entity.LevelWarning, notification.Level)
	assert.Equal(t, MsgAlreadyInCart, notification.Message)
}

func TestAddToCart_BackendRejectionShownVerbatim(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())

	backendErr := &infrastructure.BackendError{
		StatusCode: http.StatusBadRequest,
		Message:    "Product doesn't exist",
	}
	deps.backend.On("MutateCart", ctx, sess.Token, "ghost", 1).Return(nil, backendErr)

	// Act
	_, err := svc.AddToCart(ctx, sess, "ghost")

	// Assert
	assert.Error(t, err)
	notification := deps.notifier.last()
	assert.NotNil(t, notification)
	assert.Equal(t, entity.LevelError, notification.Level)
	assert.Equal(t, "Product doesn't exist", notification.Message)
}

// ===================== UpdateQuantity Tests =====================

func TestUpdateQuantity_BypassesDuplicateGuard(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())
	svc.setEntries([]entity.CartEntry{{ProductID: "2", Qty: 1}})

	updated := []entity.CartEntry{{ProductID: "2", Qty: 5}}
	deps.backend.On("MutateCart", ctx, sess.Token, "2", 5).Return(updated, nil)
	deps.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	items, err := svc.UpdateQuantity(ctx, sess, "2", 5)

	// Assert
	// Явная корректировка количества - не повторное добавление
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Qty)
}

func TestUpdateQuantity_BackendResponseIsGroundTruth(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())
	svc.setEntries([]entity.CartEntry{
		{ProductID: "1", Qty: 1},
		{ProductID: "2", Qty: 1},
	})

	// Backend вернул корзину без позиции "2": количество дошло до нуля
	updated := []entity.CartEntry{{ProductID: "1", Qty: 1}}
	deps.backend.On("MutateCart", ctx, sess.Token, "2", 0).Return(updated, nil)
	deps.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	items, err := svc.UpdateQuantity(ctx, sess, "2", 0)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Len(t, svc.CartItems(), 1)
}

// ===================== AdjustQuantity Tests =====================

func TestAdjustQuantity_IncrementsLoadedQuantity(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())
	svc.setEntries([]entity.CartEntry{{ProductID: "2", Qty: 2}})

	updated := []entity.CartEntry{{ProductID: "2", Qty: 3}}
	deps.backend.On("MutateCart", ctx, sess.Token, "2", 3).Return(updated, nil)
	deps.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	items, err := svc.AdjustQuantity(ctx, sess, "2", 1)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 3, items[0].Qty)
	deps.backend.AssertExpectations(t)
}

func TestAdjustQuantity_DecrementToZeroGoesToBackend(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())
	svc.setEntries([]entity.CartEntry{{ProductID: "2", Qty: 1}})

	// Нижняя граница не проверяется локально: решает backend
	deps.backend.On("MutateCart", ctx, sess.Token, "2", 0).Return([]entity.CartEntry{}, nil)
	deps.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	items, err := svc.AdjustQuantity(ctx, sess, "2", -1)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0.0, svc.CartValue())
}

func TestAdjustQuantity_BackendFailureKeepsLocalState(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())
	svc.setEntries([]entity.CartEntry{{ProductID: "2", Qty: 2}})

	deps.backend.On("MutateCart", ctx, sess.Token, "2", 3).Return(nil, errors.New("connection refused"))

	// Act
	_, err := svc.AdjustQuantity(ctx, sess, "2", 1)

	// Assert
	// Локальное состояние не трогаем без подтверждения backend
	assert.Error(t, err)
	items := svc.CartItems()
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)

	notification := deps.notifier.last()
	assert.NotNil(t, notification)
	assert.Equal(t, MsgCartUnreachable, notification.Message)
}

// ===================== Summary Tests =====================

func TestSummary_ReflectsLoadedCart(t *testing.T) {
	// Arrange
	svc, _ := newTestService()
	svc.setCatalog(sampleCatalog())
	svc.setEntries([]entity.CartEntry{
		{ProductID: "1", Qty: 1},
		{ProductID: "2", Qty: 2},
	})

	// Act
	summary := svc.Summary()

	// Assert
	assert.Equal(t, 2, summary.Products)
	assert.Equal(t, 200.0, summary.Subtotal)
	assert.Equal(t, 0.0, summary.Shipping)
	assert.Equal(t, 200.0, summary.Total)
}
