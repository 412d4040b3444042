// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package shapefile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/apex/log"
	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"github.com/staranto/wbdctl/internal/dataset"
	"github.com/staranto/wbdctl/internal/geom"
)

// ErrMalformed marks a shapefile that exists but could not be decoded.
var ErrMalformed = errors.New("malformed shapefile")

// Read parses the polygon layer at path, and its sibling .dbf, into a
// dataset. A missing file yields an error wrapping fs.ErrNotExist; anything
// wrong with the contents wraps ErrMalformed.
func Read(path string) (ds *dataset.Dataset, err error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("shapefile %s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("shapefile %s: %w", path, err)
	}

	if err := checkHeader(path); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMalformed, path, err)
	}
	table := basename(path) + ".dbf"
	if _, err := os.Stat(table); err != nil {
		return nil, fmt.Errorf("%w %s: attribute table %s unreadable: %v", ErrMalformed, path, table, err)
	}

	// go-shp panics on truncated records instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			ds = nil
			err = fmt.Errorf("%w %s: %v", ErrMalformed, path, r)
		}
	}()

	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMalformed, path, err)
	}
	defer reader.Close()

	fields := reader.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w %s: attribute table %s has no fields", ErrMalformed, path, table)
	}
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = strings.TrimRight(f.String(), "\x00")
	}
	log.Debugf("shapefile %s: columns %v", path, columns)

	ds = dataset.New(columns...)
	for reader.Next() {
		n, shape := reader.Shape()

		attrs := make(map[string]string, len(columns))
		for k, c := range columns {
			attrs[c] = strings.Trim(reader.ReadAttribute(n, k), " \x00")
		}

		g, err := toGeometry(shape)
		if err != nil {
			return nil, fmt.Errorf("%w %s: record %d: %w", ErrMalformed, path, n, err)
		}
		ds.Append(g, attrs)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMalformed, path, err)
	}

	log.Debugf("shapefile %s: %d records", path, ds.Len())
	return ds, nil
}

const (
	headerLen = 100
	fileCode  = 9994
)

// checkHeader verifies the main file header: the magic file code and a
// declared length (in 16-bit words) that matches the file on disk.
func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < headerLen {
		return fmt.Errorf("file is %d bytes, shorter than its header", info.Size())
	}

	var hdr [headerLen]byte
	if _, err := f.ReadAt(hdr[:], 0); err != nil {
		return err
	}
	if code := binary.BigEndian.Uint32(hdr[0:4]); code != fileCode {
		return fmt.Errorf("bad file code %d", code)
	}
	if declared := int64(binary.BigEndian.Uint32(hdr[24:28])) * 2; declared != info.Size() {
		return fmt.Errorf("header declares %d bytes, file has %d", declared, info.Size())
	}
	return nil
}

// toGeometry converts a shapefile record to orb. Polygon records are split
// into shells and holes; null records become nil geometries.
func toGeometry(s shp.Shape) (orb.Geometry, error) {
	switch v := s.(type) {
	case *shp.Null:
		return nil, nil
	case *shp.Polygon:
		return polygon(v.Parts, v.Points)
	case *shp.PolygonZ:
		return polygon(v.Parts, v.Points)
	case *shp.PolygonM:
		return polygon(v.Parts, v.Points)
	case *shp.Point:
		return orb.Point{v.X, v.Y}, nil
	default:
		return nil, fmt.Errorf("unsupported shape type %T", s)
	}
}

func polygon(parts []int32, points []shp.Point) (orb.Geometry, error) {
	rings := make([]orb.Ring, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(points) {
			return nil, fmt.Errorf("part %d out of range [%d:%d]", i, start, end)
		}

		r := make(orb.Ring, 0, end-start+1)
		for _, p := range points[start:end] {
			r = append(r, orb.Point{p.X, p.Y})
		}
		if len(r) < 3 {
			continue
		}
		if !r.Closed() {
			r = append(r, r[0])
		}
		rings = append(rings, r)
	}

	// Outer rings are clockwise, holes counter-clockwise. Layers that
	// ignore the winding rule fall back to nesting depth.
	var shells, holes []orb.Ring
	for _, r := range rings {
		if r.Orientation() == orb.CCW {
			holes = append(holes, r)
		} else {
			shells = append(shells, r)
		}
	}
	if len(shells) == 0 {
		return geom.Assemble(rings), nil
	}
	return geom.Group(shells, holes), nil
}
