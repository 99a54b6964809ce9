package ui

import (
	"sync"
	"time"
)

// Scheduler runs deferred UI work such as hiding a modal or dismissing a
// notification. Scheduled work cannot be cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// TimerScheduler runs fn on its own goroutine after d.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// ImmediateScheduler runs fn synchronously, ignoring d.
type ImmediateScheduler struct{}

func (ImmediateScheduler) AfterFunc(_ time.Duration, fn func()) {
	fn()
}

// ManualScheduler queues work until Flush is called.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (m *ManualScheduler) AfterFunc(_ time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, fn)
}

func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Flush runs everything queued so far, in order.
func (m *ManualScheduler) Flush() {
	m.mu.Lock()
	fns := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
