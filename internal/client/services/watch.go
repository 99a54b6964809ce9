package services

import "sync"

// watchers holds re-render callbacks registered by the UI. Callbacks run after
// the state they observe has been committed, outside the service lock.
type watchers struct {
	mu  sync.Mutex
	fns []func()
}

func (w *watchers) add(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fns = append(w.fns, fn)
}

func (w *watchers) notify() {
	w.mu.Lock()
	fns := append([]func(){}, w.fns...)
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
