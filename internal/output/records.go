// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/staranto/wbdctl/internal/dataset"
	"github.com/staranto/wbdctl/internal/geom"
)

// Records serializes ds as a JSON array with one record per row:
//
//	{"attributes": {...}, "geometry": "Polygon", "area_km2": 95.47,
//	 "geohash": "9vr8jg2", "centroid": [-90.45, 29.55]}
//
// Record keys other than attributes are what '.'-prefixed --attrs address.
func Records(ds *dataset.Dataset) ([]byte, error) {
	records := make([]map[string]any, 0, ds.Len())
	if ds != nil {
		for _, row := range ds.Rows {
			records = append(records, record(row))
		}
	}

	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build output records: %w", err)
	}
	return b, nil
}

func record(row dataset.Row) map[string]any {
	rec := map[string]any{
		"attributes": row.Attrs,
		"geometry":   "",
		"area_km2":   0.0,
		"geohash":    "",
	}
	if row.Geometry == nil {
		return rec
	}

	rec["geometry"] = row.Geometry.GeoJSONType()
	rec["area_km2"] = round(geom.AreaKm2(row.Geometry), 2)
	rec["geohash"] = geom.Geohash(row.Geometry)
	c := geom.Centroid(row.Geometry)
	rec["centroid"] = []float64{round(c.Lon(), 6), round(c.Lat(), 6)}
	return rec
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
