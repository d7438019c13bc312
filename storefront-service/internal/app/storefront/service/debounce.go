package service

import (
	"sync"
	"time"
)

// SearchDebouncer коалесцирует текстовый ввод поиска
// Каждый новый ввод сбрасывает отложенный вызов; запрос уходит
// только после окна тишины. Отменённые вызовы не выполняются
type SearchDebouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	run    func(query string)
}

// NewSearchDebouncer создает debouncer с заданным окном тишины
func NewSearchDebouncer(window time.Duration, run func(query string)) *SearchDebouncer {
	return &SearchDebouncer{
		window: window,
		run:    run,
	}
}

// Queue планирует выполнение поиска после окна тишины
// Ранее запланированный и ещё не ушедший вызов отменяется
func (d *SearchDebouncer) Queue(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.run(query)
	})
}

// Stop отменяет отложенный вызов, если он есть
func (d *SearchDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
