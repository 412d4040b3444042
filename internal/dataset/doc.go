// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package dataset holds the tabular geometry type shared by the fetch,
// select and output stages, and its GeoJSON encoding.
package dataset
