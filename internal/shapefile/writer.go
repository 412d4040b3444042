// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package shapefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"github.com/staranto/wbdctl/internal/dataset"
	"github.com/staranto/wbdctl/internal/geom"
)

// maxFieldLen is the widest character field a dBASE III table allows.
const maxFieldLen = 254

// Write stores ds as a polygon shapefile at path (plus .shx and .dbf).
// Shells are written clockwise and holes counter-clockwise as the format
// requires. Rows without an areal geometry are written as empty polygons.
func Write(path string, ds *dataset.Dataset) (err error) {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return fmt.Errorf("failed to create shapefile %s: %w", path, err)
	}
	defer func() {
		w.Close()
		if perr := placeTable(basename(path)); perr != nil && err == nil {
			err = perr
		}
	}()

	fields := make([]shp.Field, len(ds.Columns))
	for i, c := range ds.Columns {
		width := 1
		for _, r := range ds.Rows {
			width = max(width, len(r.Attrs[c]))
		}
		fields[i] = shp.StringField(c, uint8(min(width, maxFieldLen)))
	}
	if err := w.SetFields(fields); err != nil {
		return fmt.Errorf("failed to set shapefile fields: %w", err)
	}

	for _, r := range ds.Rows {
		row := int(w.Write(toShape(r.Geometry)))
		for k, c := range ds.Columns {
			if err := w.WriteAttribute(row, k, r.Attrs[c]); err != nil {
				return fmt.Errorf("failed to write attribute %s: %w", c, err)
			}
		}
	}
	return nil
}

// basename strips a trailing .shp the way shp.Create does.
func basename(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".shp") {
		return path[:len(path)-4]
	}
	return path
}

// placeTable moves the attribute table go-shp wrote as <base>dbf to
// <base>.dbf, where readers look for it.
func placeTable(base string) error {
	err := os.Rename(base+"dbf", base+".dbf")
	if errors.Is(err, fs.ErrNotExist) {
		if _, serr := os.Stat(base + ".dbf"); serr == nil {
			return nil
		}
	}
	if err != nil {
		return fmt.Errorf("failed to place attribute table %s.dbf: %w", base, err)
	}
	return nil
}

func toShape(g orb.Geometry) *shp.Polygon {
	var parts [][]shp.Point
	var polys []orb.Polygon
	switch v := g.(type) {
	case orb.Polygon:
		polys = []orb.Polygon{v}
	case orb.MultiPolygon:
		polys = v
	default:
		if rings := geom.Rings(g); len(rings) > 0 {
			polys = []orb.Polygon{rings}
		}
	}

	for _, p := range polys {
		for i, r := range p {
			want := orb.CCW
			if i == 0 {
				want = orb.CW
			}
			pts := make([]shp.Point, 0, len(r))
			for _, pt := range r {
				pts = append(pts, shp.Point{X: pt[0], Y: pt[1]})
			}
			if r.Orientation() != want {
				for a, b := 0, len(pts)-1; a < b; a, b = a+1, b-1 {
					pts[a], pts[b] = pts[b], pts[a]
				}
			}
			parts = append(parts, pts)
		}
	}

	if len(parts) == 0 {
		return &shp.Polygon{}
	}
	polygon := shp.Polygon(*shp.NewPolyLine(parts))
	return &polygon
}
