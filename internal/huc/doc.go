// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package huc names the hydrologic unit levels of the Watershed Boundary
// Dataset and maps each to its code column and shapefile layer.
package huc
