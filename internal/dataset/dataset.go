// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"slices"

	"github.com/paulmach/orb"
)

// Row is one region polygon and its attribute values.
type Row struct {
	Geometry orb.Geometry
	Attrs    map[string]string
}

// Dataset is an in-memory table of region geometries. Columns records the
// attribute order of the source layer; every row carries a value (possibly
// empty) for each column.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// New returns an empty dataset with the given columns.
func New(columns ...string) *Dataset {
	return &Dataset{Columns: slices.Clone(columns)}
}

// Len returns the number of rows. A nil dataset has no rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// HasColumn reports whether name is one of the dataset's columns.
func (d *Dataset) HasColumn(name string) bool {
	return d != nil && slices.Contains(d.Columns, name)
}

// Append adds a row, registering any attribute not yet in Columns.
func (d *Dataset) Append(geom orb.Geometry, attrs map[string]string) {
	if attrs == nil {
		attrs = map[string]string{}
	}
	for k := range attrs {
		if !slices.Contains(d.Columns, k) {
			d.Columns = append(d.Columns, k)
		}
	}
	d.Rows = append(d.Rows, Row{Geometry: geom, Attrs: attrs})
}

// Values returns the column's value for every row, in row order.
func (d *Dataset) Values(column string) []string {
	out := make([]string, 0, d.Len())
	for _, r := range d.Rows {
		out = append(out, r.Attrs[column])
	}
	return out
}

// Where returns a new dataset holding the rows for which keep is true. Rows
// are shared with d, not copied.
func (d *Dataset) Where(keep func(Row) bool) *Dataset {
	out := New(d.Columns...)
	for _, r := range d.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Geometries returns the non-nil geometry of every row.
func (d *Dataset) Geometries() []orb.Geometry {
	out := make([]orb.Geometry, 0, d.Len())
	for _, r := range d.Rows {
		if r.Geometry != nil {
			out = append(out, r.Geometry)
		}
	}
	return out
}

// Bound returns the bounding box of all rows.
func (d *Dataset) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, g := range d.Geometries() {
		if first {
			b = g.Bound()
			first = false
			continue
		}
		b = b.Union(g.Bound())
	}
	return b
}
