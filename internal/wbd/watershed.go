// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package wbd

import (
	"context"

	"github.com/staranto/wbdctl/internal/dataset"
	"github.com/staranto/wbdctl/internal/huc"
)

// Defaults for the Mississippi delta watershed in region 08.
const (
	DefaultRegion    = "08"
	DefaultLevel     = huc.Level(12)
	DefaultWatershed = "080902030506"
)

// WatershedRequest selects one watershed of one HU2 region.
type WatershedRequest struct {
	Region    string
	Level     huc.Level
	Watershed string
	Dissolve  bool
	// StorageKey defaults to "wbd_<region>".
	StorageKey string
	Override   bool
}

// StorageKeyFor is the default storage namespace of a region.
func StorageKeyFor(region string) string {
	return "wbd_" + region
}

// Watershed fetches the region's layer, cached under "hu<level>", and
// selects req.Watershed from it.
func (f *Fetcher) Watershed(ctx context.Context, req WatershedRequest) (*dataset.Dataset, error) {
	name, err := huc.DatasetName(req.Region)
	if err != nil {
		return nil, &Error{Stage: StageNotFound, Level: req.Level, Err: err}
	}
	storageKey := req.StorageKey
	if storageKey == "" {
		storageKey = StorageKeyFor(req.Region)
	}

	ds, err := f.Fetch(ctx, FetchRequest{
		Dataset:      name,
		Level:        req.Level,
		CacheKey:     req.Level.CacheKey(),
		StorageKey:   storageKey,
		ForceRefresh: req.Override,
	})
	if err != nil {
		return nil, err
	}
	return Select(ds, req.Level, req.Watershed, req.Dissolve)
}
