package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDocumentStore keeps each collection as a JSON array under its key.
type RedisDocumentStore struct {
	client *redis.Client
}

// NewRedisDocumentStore builds a Redis-backed document store.
func NewRedisDocumentStore(addr, password string) *RedisDocumentStore {
	return &RedisDocumentStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// LoadAll reads and decodes the collection stored under key.
func (s *RedisDocumentStore) LoadAll(key string) ([]json.RawMessage, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	var docs []json.RawMessage
	if err := json.Unmarshal([]byte(val), &docs); err != nil {
		slog.Warn("corrupt document payload, reading as empty", "key", key, "err", err)
		return []json.RawMessage{}, true, nil
	}
	return docs, true, nil
}

// SaveAll replaces the collection stored under key in one SET.
func (s *RedisDocumentStore) SaveAll(key string, docs []json.RawMessage) error {
	if docs == nil {
		docs = []json.RawMessage{}
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
