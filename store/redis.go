// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/poll-bot/models"
)

// DefaultRedisKey is used when the redis URL has no key query parameter
const DefaultRedisKey = "poll-bot:polls_active"

// RedisStore keeps the poll document in a single string key
type RedisStore struct {
	client *redis.Client
	key    string
}

// OpenRedisStore connects to redis://[:password@]host:port/db[?key=name]
func OpenRedisStore(ctx context.Context, rawURL string) (*RedisStore, error) {
	key := DefaultRedisKey
	opts, err := redis.ParseURL(stripKeyParam(rawURL, &key))
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisStore(client, key), nil
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (models.PollCollection, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.PollCollection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.key, err)
	}

	return Decode(data, s.key), nil
}

func (s *RedisStore) Save(ctx context.Context, polls models.PollCollection) error {
	data, err := Encode(polls)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// stripKeyParam removes the key query parameter, which go-redis would reject
func stripKeyParam(rawURL string, key *string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if k := q.Get("key"); k != "" {
		*key = k
	}
	q.Del("key")
	u.RawQuery = q.Encode()
	return u.String()
}
