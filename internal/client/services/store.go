package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/footcap/internal/client/repositories/kv"
	"github.com/dmitrijs2005/footcap/internal/logging"
)

// loadList reads the JSON array stored under key. An absent key yields an
// empty slice. Unparsable data is logged and also yields an empty slice, so a
// corrupt entry never blocks the shopper; only storage I/O errors surface.
func loadList[T any](ctx context.Context, repo kv.Repository, log logging.Logger, key string) ([]T, error) {
	data, err := repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn(ctx, "discarding unreadable stored collection", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func encode(key string, v any) (kv.Entry, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return kv.Entry{}, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Entry{Key: key, Value: data}, nil
}

func saveJSON(ctx context.Context, repo kv.Repository, key string, v any) error {
	e, err := encode(key, v)
	if err != nil {
		return err
	}
	return repo.Set(ctx, e.Key, e.Value)
}
