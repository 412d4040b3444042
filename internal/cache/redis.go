// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each storage key as a redis hash whose fields are cache
// keys.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore wraps client. Hash names are prefix + storageKey.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// OpenRedis returns a client for addr. When addr is empty it is built from
// REDIS_HOST (127.0.0.1), REDIS_PORT (6379), REDIS_PASS and REDIS_DB.
func OpenRedis(addr string) *redis.Client {
	if addr == "" {
		host := os.Getenv("REDIS_HOST")
		if host == "" {
			host = "127.0.0.1"
		}
		port := os.Getenv("REDIS_PORT")
		if port == "" {
			port = "6379"
		}
		addr = host + ":" + port
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			db = n
		}
	}
	log.Debugf("redis addr=%s db=%d", addr, db)
	return redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASS"), DB: db})
}

func (s *RedisStore) hash(storageKey string) string {
	return s.prefix + storageKey
}

func (s *RedisStore) Get(ctx context.Context, storageKey, cacheKey string) ([]byte, bool, error) {
	if err := checkKeys(storageKey, cacheKey); err != nil {
		return nil, false, err
	}
	b, err := s.client.HGet(ctx, s.hash(storageKey), cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: redis HGET %s %s: %w", ErrCache, s.hash(storageKey), cacheKey, err)
	}
	return b, true, nil
}

func (s *RedisStore) Put(ctx context.Context, storageKey, cacheKey string, value []byte) error {
	if err := checkKeys(storageKey, cacheKey); err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.hash(storageKey), cacheKey, value).Err(); err != nil {
		return fmt.Errorf("%w: redis HSET %s %s: %w", ErrCache, s.hash(storageKey), cacheKey, err)
	}
	return nil
}

func (s *RedisStore) Has(ctx context.Context, storageKey, cacheKey string) (bool, error) {
	if err := checkKeys(storageKey, cacheKey); err != nil {
		return false, err
	}
	ok, err := s.client.HExists(ctx, s.hash(storageKey), cacheKey).Result()
	if err != nil {
		return false, fmt.Errorf("%w: redis HEXISTS %s %s: %w", ErrCache, s.hash(storageKey), cacheKey, err)
	}
	return ok, nil
}

// Drop deletes a whole storage namespace.
func (s *RedisStore) Drop(ctx context.Context, storageKey string) error {
	if err := s.client.Del(ctx, s.hash(storageKey)).Err(); err != nil {
		return fmt.Errorf("%w: redis DEL %s: %w", ErrCache, s.hash(storageKey), err)
	}
	return nil
}
