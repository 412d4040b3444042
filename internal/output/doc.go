// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package output renders datasets as tables, JSON, YAML, GeoJSON, WKT or
// shapefiles after applying --attrs, --filter and --sort.
package output
