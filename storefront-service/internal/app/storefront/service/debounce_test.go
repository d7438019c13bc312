package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ===================== SearchDebouncer Tests =====================

func TestSearchDebouncer_CoalescesRapidInput(t *testing.T) {
	// Arrange
	var mu sync.Mutex
	var calls []string

	d := NewSearchDebouncer(30*time.Millisecond, func(query string) {
		mu.Lock()
		calls = append(calls, query)
		mu.Unlock()
	})
	defer d.Stop()

	// Act
	// Быстрый ввод: каждый новый символ сбрасывает окно
	d.Queue("i")
	d.Queue("ip")
	d.Queue("iphone")

	time.Sleep(150 * time.Millisecond)

	// Assert
	// К backend уходит только последний запрос
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"iphone"}, calls)
}

func TestSearchDebouncer_FiresAgainAfterQuietWindow(t *testing.T) {
	// Arrange
	var mu sync.Mutex
	var calls []string

	d := NewSearchDebouncer(20*time.Millisecond, func(query string) {
		mu.Lock()
		calls = append(calls, query)
		mu.Unlock()
	})
	defer d.Stop()

	// Act
	d.Queue("first")
	time.Sleep(100 * time.Millisecond)
	d.Queue("second")
	time.Sleep(100 * time.Millisecond)

	// Assert
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestSearchDebouncer_StopCancelsPending(t *testing.T) {
	// Arrange
	var mu sync.Mutex
	fired := false

	d := NewSearchDebouncer(30*time.Millisecond, func(query string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	// Act
	d.Queue("cancelled")
	d.Stop()

	time.Sleep(100 * time.Millisecond)

	// Assert
	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired)
}
