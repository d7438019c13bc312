package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config содержит все настройки Storefront Service
// Включает конфигурацию HTTP сервера, QKart backend, Redis, Kafka и витрины
type Config struct {
	Server     ServerConfig
	Backend    BackendConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Storefront StorefrontConfig
	LogLevel   string
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8085)
}

// BackendConfig - настройки клиента QKart REST backend
// Backend владеет каталогом, корзинами и аутентификацией
type BackendConfig struct {
	BaseURL string        // Базовый URL backend API
	Timeout time.Duration // Таймаут исходящих HTTP запросов
}

// RedisConfig - настройки подключения к Redis
// Используется для хранения сессий и кеширования снимка каталога
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки Kafka для отправки событий витрины
// События: USER_LOGGED_IN, SEARCH_PERFORMED, CART_UPDATED
type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик событий витрины
}

// StorefrontConfig - настройки поведения витрины
type StorefrontConfig struct {
	SearchDebounce  time.Duration // Окно тишины перед отправкой поискового запроса
	SessionTTL      time.Duration // Время жизни сессии в Redis
	CatalogCacheTTL time.Duration // TTL снимка каталога в Redis
	RefreshSchedule string        // Cron расписание обновления снимка каталога
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	backendTimeout, err := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SEC", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT_SEC value: %w", err)
	}

	debounceMs, err := strconv.Atoi(getEnv("SEARCH_DEBOUNCE_MS", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_DEBOUNCE_MS value: %w", err)
	}

	sessionTTLHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "168"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS value: %w", err)
	}

	catalogTTLMin, err := strconv.Atoi(getEnv("CATALOG_CACHE_TTL_MIN", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL_MIN value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8085"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8082/api/v1"),
			Timeout: time.Duration(backendTimeout) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "storefront_events"),
		},
		Storefront: StorefrontConfig{
			SearchDebounce:  time.Duration(debounceMs) * time.Millisecond,
			SessionTTL:      time.Duration(sessionTTLHours) * time.Hour,
			CatalogCacheTTL: time.Duration(catalogTTLMin) * time.Minute,
			RefreshSchedule: getEnv("CATALOG_REFRESH_SCHEDULE", "@every 10m"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
