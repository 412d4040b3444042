// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// columnsMember is the FeatureCollection foreign member that keeps the
// column order, which GeoJSON property objects do not preserve.
const columnsMember = "columns"

// FeatureCollection converts d into a GeoJSON feature collection.
func (d *Dataset) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if d == nil {
		return fc
	}
	cols := make([]interface{}, 0, len(d.Columns))
	for _, c := range d.Columns {
		cols = append(cols, c)
	}
	fc.ExtraMembers = geojson.Properties{columnsMember: cols}

	for _, r := range d.Rows {
		f := geojson.NewFeature(r.Geometry)
		for _, c := range d.Columns {
			f.Properties[c] = r.Attrs[c]
		}
		fc.Append(f)
	}
	return fc
}

// FromFeatureCollection rebuilds a dataset from a collection written by
// FeatureCollection. Collections without the columns member take their
// columns from the features' properties.
func FromFeatureCollection(fc *geojson.FeatureCollection) (*Dataset, error) {
	d := New()
	if raw, ok := fc.ExtraMembers[columnsMember]; ok {
		list, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("malformed %q member: %T", columnsMember, raw)
		}
		for _, c := range list {
			s, ok := c.(string)
			if !ok {
				return nil, fmt.Errorf("malformed column name: %v", c)
			}
			d.Columns = append(d.Columns, s)
		}
	}

	for _, f := range fc.Features {
		attrs := make(map[string]string, len(f.Properties))
		for k, v := range f.Properties {
			switch val := v.(type) {
			case string:
				attrs[k] = val
			case nil:
				attrs[k] = ""
			default:
				attrs[k] = fmt.Sprint(val)
			}
		}
		d.Append(f.Geometry, attrs)
	}
	return d, nil
}

// GeoJSONCodec encodes datasets as GeoJSON feature collections. It is the
// on-disk and in-redis representation of a cached dataset.
type GeoJSONCodec struct{}

// Encode implements cache.Codec.
func (GeoJSONCodec) Encode(d *Dataset) ([]byte, error) {
	b, err := d.FeatureCollection().MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return b, nil
}

// Decode implements cache.Codec.
func (GeoJSONCodec) Decode(b []byte) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return FromFeatureCollection(fc)
}
