package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="storefront"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Backend Метрики (исходящие запросы к QKart API)
// =============================================================================

// BackendRequestsTotal - счётчик запросов к backend
// call: fetch_products, search_products, fetch_cart, mutate_cart, login
// status: HTTP статус ответа либо "network_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Total number of requests to the QKart backend",
	},
	[]string{"service", "call", "status"},
)

// BackendRequestDuration - время ответа backend по типам вызовов
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of QKart backend requests in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "call"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики (специфичные для QKart storefront)
// =============================================================================

// StorefrontLogins - попытки входа через витрину
var StorefrontLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_logins_total",
		Help: "Total number of login attempts through the storefront",
	},
	[]string{"status"}, // success, rejected, failed
)

// StorefrontSearches - поисковые запросы
var StorefrontSearches = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_searches_total",
		Help: "Total number of remote catalog searches",
	},
	[]string{"status"}, // ok, empty, stale, failed
)

// CartOperations - операции с корзиной
var CartOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Total number of cart mutations issued to the backend",
	},
	[]string{"operation", "status"}, // operation: add, update; status: success, failed
)

// CartRejections - операции, отклонённые до обращения к backend
var CartRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cart_rejections_total",
		Help: "Cart actions rejected client-side before any backend call",
	},
	[]string{"reason"}, // not_logged_in, duplicate_add
)

// CatalogSnapshotSize - размер текущего снимка каталога
var CatalogSnapshotSize = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "catalog_snapshot_size",
		Help: "Number of products in the current catalog snapshot",
	},
)
