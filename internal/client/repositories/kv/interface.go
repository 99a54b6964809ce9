// Package kv is the local key/value persistence layer: the place where users,
// the session pointer, and per-user carts, wishlists and orders are kept as
// JSON text under string keys.
//
// Three implementations share the Repository contract:
//
//   - SQLiteRepository: default, a single "storage" table in a local file
//   - MemoryRepository: process-lifetime only (tests, -s memory)
//   - RedisRepository: shared store under a key prefix (-s redis)
package kv

import (
	"context"
)

// Entry is a key/value pair written by SetMany.
type Entry struct {
	Key   string
	Value []byte
}

// Repository is the local storage contract.
//
// Get returns (nil, nil) for an absent key. Delete of an absent key is not an
// error. SetMany writes all entries or none.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries ...Entry) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
