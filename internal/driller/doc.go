// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package driller resolves dotted attribute paths, with optional [n]
// indexes, against JSON documents such as GeoJSON features.
package driller
