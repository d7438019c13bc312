package infrastructure

import (
	"errors"
	"fmt"
)

// ErrSearchNotFound возвращается клиентом при поиске без результатов (HTTP 404)
// Это не ошибка для пользователя: витрина показывает пустой список
var ErrSearchNotFound = errors.New("no products matched the search")

// BackendError - ошибка, о которой backend сообщил статусом и телом ответа
// Message содержит текст из тела {"success": false, "message": "..."}
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// AsBackendError извлекает BackendError из цепочки ошибок
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
