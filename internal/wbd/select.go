// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package wbd

import (
	"fmt"
	"maps"

	"github.com/apex/log"

	"github.com/staranto/wbdctl/internal/dataset"
	"github.com/staranto/wbdctl/internal/geom"
	"github.com/staranto/wbdctl/internal/huc"
)

// Select narrows ds to the regions whose level code equals target and, with
// dissolve set, merges them into a single row. An empty target keeps every
// row. The dissolved row takes its attributes from the first match.
//
// No match is not an error: the result is an empty dataset whether or not
// dissolve is set. Use RequireMatch to treat it as one.
func Select(ds *dataset.Dataset, level huc.Level, target string, dissolve bool) (*dataset.Dataset, error) {
	column, err := level.Column()
	if err != nil {
		return nil, &Error{Stage: StageNotFound, Level: level, Err: err}
	}
	if !ds.HasColumn(column) {
		return nil, &Error{Stage: StageNotFound, Level: level,
			Err: fmt.Errorf("column %q not in dataset %v", column, columnsOf(ds))}
	}

	out := ds
	if target != "" {
		out = ds.Where(func(r dataset.Row) bool { return r.Attrs[column] == target })
		log.Debugf("select %s=%s: %d of %d rows", column, target, out.Len(), ds.Len())
	}

	if !dissolve || out.Len() == 0 {
		return out, nil
	}
	return Dissolve(out), nil
}

// Dissolve unions every geometry of ds into one row carrying the first
// row's attributes. ds must not be empty.
func Dissolve(ds *dataset.Dataset) *dataset.Dataset {
	out := dataset.New(ds.Columns...)
	out.Rows = append(out.Rows, dataset.Row{
		Geometry: geom.Union(ds.Geometries()...),
		Attrs:    maps.Clone(ds.Rows[0].Attrs),
	})
	return out
}

// RequireMatch turns an empty selection into a not-found error.
func RequireMatch(ds *dataset.Dataset, level huc.Level, target string) error {
	if ds.Len() > 0 {
		return nil
	}
	return &Error{Stage: StageNotFound, Level: level,
		Err: fmt.Errorf("no region with code %q", target)}
}

func columnsOf(ds *dataset.Dataset) []string {
	if ds == nil {
		return nil
	}
	return ds.Columns
}
