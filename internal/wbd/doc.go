// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package wbd fetches Watershed Boundary Dataset layers through a cache and
// selects watersheds from them.
package wbd
