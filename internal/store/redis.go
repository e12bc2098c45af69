package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"txhandoff/internal/record"
)

// Redis stores records as JSON strings under record:{id}.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a redis backed store.
func NewRedis(addr, password string) (*Redis, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis store requires an address")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   2,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})
	return &Redis{client: client}, nil
}

func (s *Redis) Save(ctx context.Context, rec record.Record) error {
	key := string(recordKey(rec.ID()))
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	created, err := s.client.WithContext(ctx).SetNX(key, value, 0).Result()
	if err != nil {
		return err
	}
	if !created {
		return ErrDuplicate
	}
	return nil
}

func (s *Redis) Get(ctx context.Context, id string) (record.Record, error) {
	value, err := s.client.WithContext(ctx).Get(string(recordKey(id))).Bytes()
	if err == redis.Nil {
		return record.Record{}, ErrNotFound
	}
	if err != nil {
		return record.Record{}, err
	}
	var rec record.Record
	if err := json.Unmarshal(value, &rec); err != nil {
		return record.Record{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return rec, nil
}

func (s *Redis) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

var _ Store = (*Redis)(nil)
