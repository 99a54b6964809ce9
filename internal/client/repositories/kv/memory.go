package kv

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryRepository keeps values in a map for the lifetime of the process.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = slices.Clone(value)
	return nil
}

func (r *MemoryRepository) SetMany(_ context.Context, entries ...Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		r.data[e.Key] = slices.Clone(e.Value)
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := maps.Clone(r.data)
	for k, v := range out {
		out[k] = slices.Clone(v)
	}
	return out, nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.data)
	return nil
}
