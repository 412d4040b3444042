// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package shapefile reads WBD polygon layers into datasets.
package shapefile
