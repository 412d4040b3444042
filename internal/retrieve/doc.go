// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package retrieve downloads staged WBD archives over HTTPS or S3 and
// extracts them into a working directory.
package retrieve
