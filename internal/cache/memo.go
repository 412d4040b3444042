// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"fmt"

	"github.com/apex/log"
)

// Codec converts a memoized value to and from its stored bytes.
type Codec[T any] interface {
	Encode(T) ([]byte, error)
	Decode([]byte) (T, error)
}

// Memo memoizes a producer in a Store. Two calls with the same keys are
// assumed to produce the same value; nothing checks that they would.
type Memo[T any] struct {
	Store Store
	Codec Codec[T]
}

// Do returns the value stored under (storageKey, cacheKey), or runs produce
// and stores its result. With override set the store is not consulted and
// produce always runs; its result replaces the stored entry. Nothing is
// stored when produce fails. Errors from produce are returned unchanged;
// store and codec failures wrap ErrCache.
func (m Memo[T]) Do(
	ctx context.Context,
	storageKey, cacheKey string,
	override bool,
	produce func(context.Context) (T, error),
) (T, error) {
	var zero T
	logger := log.WithFields(log.Fields{"storage": storageKey, "key": cacheKey})

	if !override {
		b, ok, err := m.Store.Get(ctx, storageKey, cacheKey)
		if err != nil {
			return zero, err
		}
		if ok {
			v, err := m.Codec.Decode(b)
			if err != nil {
				return zero, fmt.Errorf("%w: entry %s/%s: %w", ErrCache, storageKey, cacheKey, err)
			}
			logger.Debug("cache hit")
			return v, nil
		}
		logger.Debug("cache miss")
	} else {
		logger.Debug("cache override")
	}

	v, err := produce(ctx)
	if err != nil {
		return zero, err
	}

	b, err := m.Codec.Encode(v)
	if err != nil {
		return zero, fmt.Errorf("%w: entry %s/%s: %w", ErrCache, storageKey, cacheKey, err)
	}
	if err := m.Store.Put(ctx, storageKey, cacheKey, b); err != nil {
		return zero, err
	}
	logger.Debugf("cache stored %d bytes", len(b))
	return v, nil
}

// Cached reports whether an entry exists for the keys.
func (m Memo[T]) Cached(ctx context.Context, storageKey, cacheKey string) (bool, error) {
	return m.Store.Has(ctx, storageKey, cacheKey)
}
