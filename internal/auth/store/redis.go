package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/siglink-dev/siglink-gate/pkg/schema"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis constructs a redis-backed record store.
func NewRedis(cfg Config) (Store, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis configuration missing")
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%w: redis ping failed: %v", ErrUnavailable, err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "auth:sig:"
	}
	return &redisStore{client: client, prefix: prefix}, nil
}

func (s *redisStore) key(signature string) string {
	return s.prefix + signature
}

func (s *redisStore) Put(ctx context.Context, rec schema.AuthRecord) error {
	if rec.Signature == "" {
		return ErrEmptySignature
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	// Records never expire; absence of a record is the only "false" state.
	if err := s.client.Set(ctx, s.key(rec.Signature), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, signature string) (schema.AuthRecord, error) {
	raw, err := s.client.Get(ctx, s.key(signature)).Bytes()
	if err == redis.Nil {
		return schema.AuthRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return schema.AuthRecord{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var rec schema.AuthRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return schema.AuthRecord{}, fmt.Errorf("corrupt record %s: %w", signature, err)
	}
	return rec, nil
}

func (s *redisStore) Delete(ctx context.Context, signature string) error {
	if err := s.client.Del(ctx, s.key(signature)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *redisStore) List(ctx context.Context) ([]string, error) {
	var cursor uint64
	sigs := make([]string, 0)
	pattern := s.prefix + "*"
	for {
		res, nextCursor, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		for _, key := range res {
			sigs = append(sigs, strings.TrimPrefix(key, s.prefix))
		}
		if nextCursor == 0 {
			break
		}
		cursor = nextCursor
	}
	return sigs, nil
}

func (s *redisStore) Stats(ctx context.Context) (map[string]any, error) {
	sigs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":  "redis",
		"total": len(sigs),
	}, nil
}

func (s *redisStore) Close(context.Context) error {
	return s.client.Close()
}
