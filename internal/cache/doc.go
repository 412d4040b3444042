// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cache memoizes expensive, deterministic fetches behind a small
// byte store keyed by (storage key, cache key). The storage key names a
// namespace (a directory, a redis hash); the cache key names one entry in
// it. File, redis and in-memory stores are provided.
package cache
