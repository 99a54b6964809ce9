package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores every key under prefix so several tools can share
// one Redis database.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(k string) string {
	return r.prefix + k
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return v, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) SetMany(ctx context.Context, entries ...Entry) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, e := range entries {
			p.Set(ctx, r.key(e.Key), e.Value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set kv batch: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

func (r *RedisRepository) List(ctx context.Context) (map[string][]byte, error) {
	keys, err := r.keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}

	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, err := r.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list kv: %w", err)
		}
		result[strings.TrimPrefix(k, r.prefix)] = v
	}
	return result, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	keys, err := r.keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}
