// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, storageKey, cacheKey string) ([]byte, bool, error) {
	if err := checkKeys(storageKey, cacheKey); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.entries[storageKey][cacheKey]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(b), true, nil
}

func (s *MemoryStore) Put(_ context.Context, storageKey, cacheKey string, value []byte) error {
	if err := checkKeys(storageKey, cacheKey); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.entries[storageKey]
	if !ok {
		ns = map[string][]byte{}
		s.entries[storageKey] = ns
	}
	ns[cacheKey] = bytes.Clone(value)
	return nil
}

func (s *MemoryStore) Has(_ context.Context, storageKey, cacheKey string) (bool, error) {
	if err := checkKeys(storageKey, cacheKey); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[storageKey][cacheKey]
	return ok, nil
}
