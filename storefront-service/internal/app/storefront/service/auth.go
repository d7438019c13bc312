package service

import (
	"context"
	"fmt"
	"net/http"

	"qkart/pkg/metrics"
	"qkart/storefront-service/internal/app/storefront/entity"
	"qkart/storefront-service/internal/app/storefront/infrastructure"
)

// Login выполняет вход пользователя через backend
// Пустые или короткие учётные данные блокируются до сетевого вызова;
// успешная сессия сохраняется в хранилище сессий
func (s *StorefrontService) Login(ctx context.Context, username, password string) (*entity.Session, error) {
	if username == "" {
		s.notifier.Notify(entity.LevelWarning, MsgUsernameRequired)
		metrics.StorefrontLogins.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, MsgUsernameRequired)
	}
	if password == "" || len(password) < 6 {
		s.notifier.Notify(entity.LevelWarning, MsgPasswordRequired)
		metrics.StorefrontLogins.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, MsgPasswordRequired)
	}

	sess, err := s.backend.Login(ctx, username, password)
	if err != nil {
		metrics.StorefrontLogins.WithLabelValues("failed").Inc()
		if be, ok := infrastructure.AsBackendError(err); ok && be.StatusCode == http.StatusBadRequest && be.Message != "" {
			s.notifier.Notify(entity.LevelError, be.Message)
		} else {
			s.notifier.Notify(entity.LevelError, MsgBackendUnreachable)
		}
		return nil, err
	}

	if err := s.sessions.Save(ctx, sess, s.sessionTTL); err != nil {
		metrics.StorefrontLogins.WithLabelValues("failed").Inc()
		s.notifier.Notify(entity.LevelError, MsgBackendUnreachable)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	metrics.StorefrontLogins.WithLabelValues("success").Inc()
	s.notifier.Notify(entity.LevelSuccess, MsgLoginSuccess)

	s.publishEvent(ctx, entity.StorefrontEvent{
		EventType: entity.EventUserLoggedIn,
		Username:  sess.Username,
	}, sess.Username)

	return sess, nil
}

// Logout удаляет сессию из хранилища и сбрасывает загруженную корзину
func (s *StorefrontService) Logout(ctx context.Context, sess *entity.Session) error {
	if sess == nil {
		return ErrNotLoggedIn
	}

	if err := s.sessions.Delete(ctx, sess.Token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.clearCart()
	return nil
}
