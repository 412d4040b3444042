// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/spf13/afero"
)

// FileStore keeps each entry in its own file at
// <base>/<storageKey>/<md5(cacheKey)>.
type FileStore struct {
	fs   afero.Fs
	base string
}

// FileOption customizes a FileStore.
type FileOption func(*FileStore)

// WithFs swaps the filesystem, mostly for tests.
func WithFs(fsys afero.Fs) FileOption {
	return func(s *FileStore) { s.fs = fsys }
}

// NewFileStore returns a store rooted at base on the OS filesystem.
func NewFileStore(base string, opts ...FileOption) *FileStore {
	s := &FileStore{fs: afero.NewOsFs(), base: base}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir resolves the base cache directory.
// Precedence:
//  1. WBDCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/wbdctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("WBDCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "wbdctl"), true
	}
	return "", false
}

// Enabled returns true unless WBDCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("WBDCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base directory when caching is enabled. The bool
// reports whether the directory is usable.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("%w: failed to create cache base directory: %w", ErrCache, err)
	}
	return base, true, nil
}

// Base returns the store's root directory.
func (s *FileStore) Base() string {
	return s.base
}

// EntryPath returns where the entry for the keys lives, and whether a file
// currently exists there.
func (s *FileStore) EntryPath(storageKey, cacheKey string) (string, bool) {
	p := filepath.Join(s.base, storageKey, encodeKey(cacheKey))
	if _, err := s.fs.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

func (s *FileStore) Get(_ context.Context, storageKey, cacheKey string) ([]byte, bool, error) {
	if err := checkKeys(storageKey, cacheKey); err != nil {
		return nil, false, err
	}
	p, _ := s.EntryPath(storageKey, cacheKey)
	b, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: failed to read %s: %w", ErrCache, p, err)
	}
	log.Debugf("cache read %s", p)
	return b, true, nil
}

// Put writes through a temporary file and renames it into place so readers
// never see a partial entry.
func (s *FileStore) Put(_ context.Context, storageKey, cacheKey string, value []byte) error {
	if err := checkKeys(storageKey, cacheKey); err != nil {
		return err
	}
	dir := filepath.Join(s.base, storageKey)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("%w: failed to create cache directory: %w", ErrCache, err)
	}

	p := filepath.Join(dir, encodeKey(cacheKey))
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("%w: failed to write to cache: %w", ErrCache, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("%w: failed to write to cache: %w", ErrCache, err)
	}
	log.Debugf("cache wrote %s", p)
	return nil
}

func (s *FileStore) Has(_ context.Context, storageKey, cacheKey string) (bool, error) {
	if err := checkKeys(storageKey, cacheKey); err != nil {
		return false, err
	}
	_, ok := s.EntryPath(storageKey, cacheKey)
	return ok, nil
}

// Purge removes entries older than the provided number of hours and returns
// how many were removed. If hours <= 0 it is a no-op. Only files laid out as
// <base>/<storageKey>/<md5(cacheKey)> count as entries; anything else below
// base, such as downloaded archives, is left alone.
func (s *FileStore) Purge(hours int) (int, error) {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return 0, nil
	}
	if _, err := s.fs.Stat(s.base); err != nil {
		return 0, nil
	}

	maxAge := time.Duration(hours) * time.Hour
	removed := 0
	if err := afero.Walk(s.fs, s.base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		rel, rerr := filepath.Rel(s.base, path)
		if rerr != nil {
			return nil
		}
		depth := len(strings.Split(filepath.ToSlash(rel), "/"))
		if info.IsDir() {
			if rel != "." && depth > 1 {
				return filepath.SkipDir
			}
			return nil
		}
		if depth != 2 || !isEncodedKey(info.Name()) {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := s.fs.Remove(path); err == nil {
				removed++
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return removed, fmt.Errorf("%w: failed to purge cache: %w", ErrCache, err)
	}
	return removed, nil
}

// isEncodedKey reports whether name could have come from encodeKey.
func isEncodedKey(name string) bool {
	if len(name) != hex.EncodedLen(md5.Size) {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
