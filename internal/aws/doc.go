// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package aws loads AWS SDK v2 configuration and S3 clients used to pull
// staged WBD products from the public USGS bucket.
package aws
