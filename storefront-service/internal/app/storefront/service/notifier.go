package service

import (
	"qkart/pkg/logger"
	"qkart/storefront-service/internal/app/storefront/entity"
)

// Тексты уведомлений витрины
const (
	MsgLoginRequired    = "Login to add an item to the Cart"
	MsgAlreadyInCart    = "Item already in cart. Use the cart sidebar to update quantity or remove item."
	MsgUsernameRequired = "Username is a required field"
	MsgPasswordRequired = "Password is a required field"
	MsgLoginSuccess     = "Logged in successfully"

	MsgBackendUnreachable = "Something went wrong. Check that the backend is running, reachable and returns valid JSON."
	MsgCartUnreachable    = "Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON."
)

// Notifier - порт уведомлений пользователя витрины
// Ни одно уведомление не фатально: витрина продолжает работать
type Notifier interface {
	Notify(level entity.NotificationLevel, message string)
}

// LogNotifier пишет уведомления в лог сервиса
// Сообщения об ошибках и предупреждения также возвращаются
// клиенту в телах HTTP ответов через handlers
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(level entity.NotificationLevel, message string) {
	event := logger.Info()
	switch level {
	case entity.LevelWarning:
		event = logger.Warn()
	case entity.LevelError:
		event = logger.Error()
	}

	event.Str("notification_level", string(level)).Msg(message)
}
