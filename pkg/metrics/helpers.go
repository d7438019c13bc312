package metrics

import (
	"time"
)

// RecordCacheHit фиксирует попадание в Redis кеш
func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

// RecordCacheMiss фиксирует промах Redis кеша
func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

// RecordRedisError фиксирует ошибку операции Redis
func RecordRedisError(service, operation string) {
	RedisErrors.WithLabelValues(service, operation).Inc()
}

// BackendTimer измеряет длительность одного вызова backend API
type BackendTimer struct {
	service string
	call    string
	start   time.Time
}

func NewBackendTimer(service, call string) *BackendTimer {
	return &BackendTimer{
		service: service,
		call:    call,
		start:   time.Now(),
	}
}

// Observe записывает длительность и статус завершившегося вызова
// status - строка HTTP статуса либо "network_error"
func (bt *BackendTimer) Observe(status string) {
	BackendRequestsTotal.WithLabelValues(bt.service, bt.call, status).Inc()
	BackendRequestDuration.WithLabelValues(bt.service, bt.call).Observe(time.Since(bt.start).Seconds())
}

// KafkaProduceTimer измеряет отправку одного сообщения в Kafka
type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}
