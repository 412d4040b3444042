// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrCache wraps every failure to read, write or decode a cache entry.
var ErrCache = errors.New("cache error")

// Store is a byte store namespaced by storage key.
type Store interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	Get(ctx context.Context, storageKey, cacheKey string) ([]byte, bool, error)
	// Put stores value, replacing any existing entry.
	Put(ctx context.Context, storageKey, cacheKey string, value []byte) error
	// Has reports whether an entry exists without reading it.
	Has(ctx context.Context, storageKey, cacheKey string) (bool, error)
}

// Nop is a Store that never holds anything. It stands in when caching is
// disabled.
type Nop struct{}

func (Nop) Get(context.Context, string, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Put(context.Context, string, string, []byte) error         { return nil }
func (Nop) Has(context.Context, string, string) (bool, error)         { return false, nil }

// checkKeys rejects keys that are empty or could escape a namespace.
func checkKeys(storageKey, cacheKey string) error {
	if storageKey == "" || cacheKey == "" {
		return fmt.Errorf("%w: empty key (storage=%q, cache=%q)", ErrCache, storageKey, cacheKey)
	}
	if strings.ContainsAny(storageKey, `/\`) || storageKey == "." || storageKey == ".." {
		return fmt.Errorf("%w: invalid storage key %q", ErrCache, storageKey)
	}
	return nil
}
