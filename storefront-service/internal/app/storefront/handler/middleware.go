package handler

import (
	"errors"
	"strings"

	"qkart/pkg/logger"
	"qkart/storefront-service/internal/app/storefront/entity"
	"qkart/storefront-service/internal/app/storefront/repository"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// SessionMiddleware загружает сессию по Bearer токену из хранилища
type SessionMiddleware struct {
	sessions repository.SessionRepository
}

func NewSessionMiddleware(sessions repository.SessionRepository) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Resolve кладёт сессию в контекст запроса, если токен передан и известен
// Запрос не отклоняется: отсутствие сессии обрабатывает бизнес-логика,
// чтобы пользователь получил предупреждение витрины, а не голый 401
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		sess, err := m.sessions.Get(c.Request.Context(), parts[1])
		if err != nil {
			if !errors.Is(err, repository.ErrSessionNotFound) {
				logger.Warn().Err(err).Msg("failed to resolve session")
			}
			c.Next()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// sessionFrom достаёт сессию из контекста запроса (nil, если её нет)
func sessionFrom(c *gin.Context) *entity.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, ok := v.(*entity.Session)
	if !ok {
		return nil
	}
	return sess
}
