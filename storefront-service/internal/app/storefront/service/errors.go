package service

import (
	"errors"
	"strings"
)

var (
	// Ошибки бизнес-правил витрины для обработки в handlers
	// Эти случаи блокируются до обращения к backend
	ErrNotLoggedIn   = errors.New("login required")
	ErrAlreadyInCart = errors.New("item already in cart")
	ErrInvalidInput  = errors.New("invalid credentials input")
)

// ValidationMessage извлекает текст предупреждения из ошибки валидации
// Ошибки строятся как "invalid credentials input: <текст для пользователя>"
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := ErrInvalidInput.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}
