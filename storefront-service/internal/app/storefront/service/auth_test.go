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

// ===================== Login Tests =====================

func TestLogin_Success(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()

	deps.backend.On("Login", ctx, "crio.do", "learnbydoing").Return(sess, nil)
	deps.sessions.On("Save", ctx, sess, mock.AnythingOfType("time.Duration")).Return(nil)
	deps.producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	result, err := svc.Login(ctx, "crio.do", "learnbydoing")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, sess, result)
	deps.sessions.AssertExpectations(t)

	notification := deps.notifier.last()
	assert.NotNil(t, notification)
	assert.Equal(t, entity.LevelSuccess, notification.Level)
	assert.Equal(t, MsgLoginSuccess, notification.Message)
}

func TestLogin_EmptyUsernameBlockedLocally(t *testing.T) {
	// Arrange
	svc, deps := newTestService()

	// Act
	result, err := svc.Login(context.Background(), "", "learnbydoing")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, MsgUsernameRequired, ValidationMessage(err))
	assert.Nil(t, result)
	deps.backend.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)

	notification := deps.notifier.last()
	assert.NotNil(t, notification)
	assert.Equal(t, entity.LevelWarning, notification.Level)
	assert.Equal(t, MsgUsernameRequired, notification.Message)
}

func TestLogin_ShortPasswordBlockedLocally(t *testing.T) {
	// Arrange
	svc, deps := newTestService()

	// Act
	// Пустой и слишком короткий пароль дают одно и то же предупреждение
	_, errEmpty := svc.Login(context.Background(), "crio.do", "")
	_, errShort := svc.Login(context.Background(), "crio.do", "abc")

	// Assert
	assert.ErrorIs(t, errEmpty, ErrInvalidInput)
	assert.ErrorIs(t, errShort, ErrInvalidInput)
	assert.Equal(t, MsgPasswordRequired, ValidationMessage(errShort))
	deps.backend.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_BackendRejectionShownVerbatim(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()

	backendErr := &infrastructure.BackendError{
		StatusCode: http.StatusBadRequest,
		Message:    "Password is incorrect",
	}
	deps.backend.On("Login", ctx, "crio.do", "wrongpass").Return(nil, backendErr)

	// Act
	result, err := svc.Login(ctx, "crio.do", "wrongpass")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)

	notification := deps.notifier.last()
	assert.NotNil(t, notification)
	assert.Equal(t, entity.LevelError, notification.Level)
	assert.Equal(t, "Password is incorrect", notification.Message)
}

func TestLogin_NetworkFailureGenericNotification(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()

	deps.backend.On("Login", ctx, "crio.do", "learnbydoing").Return(nil, errors.New("connection refused"))

	// Act
	_, err := svc.Login(ctx, "crio.do", "learnbydoing")

	// Assert
	assert.Error(t, err)
	notification := deps.notifier.last()
	assert.NotNil(t, notification)
	assert.Equal(t, MsgBackendUnreachable, notification.Message)
}

func TestLogin_SessionPersistFailure(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()

	deps.backend.On("Login", ctx, "crio.do", "learnbydoing").Return(sess, nil)
	deps.sessions.On("Save", ctx, sess, mock.AnythingOfType("time.Duration")).
		Return(errors.New("redis down"))

	// Act
	result, err := svc.Login(ctx, "crio.do", "learnbydoing")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
}

// ===================== Logout Tests =====================

func TestLogout_DeletesSessionAndClearsCart(t *testing.T) {
	// Arrange
	svc, deps := newTestService()
	ctx := context.Background()
	sess := testSession()
	svc.setCatalog(sampleCatalog())
	svc.setEntries([]entity.CartEntry{{ProductID: "1", Qty: 1}})

	deps.sessions.On("Delete", ctx, sess.Token).Return(nil)

	// Act
	err := svc.Logout(ctx, sess)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, svc.CartItems())
	deps.sessions.AssertExpectations(t)
}

func TestLogout_NotLoggedIn(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Logout(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
