// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/wbdctl/internal/attrs"
)

const records = `[
  {"attributes": {"huc12": "080902030506", "name": "Delta", "areasqkm": "95.5", "states": "LA"},
   "geometry": "Polygon", "area_km2": 95.47, "geohash": "9vr8jg2", "tags": ["coastal", "delta"]},
  {"attributes": {"huc12": "080902030507", "name": "Bayou Terrebonne", "areasqkm": "120.25", "states": "LA"},
   "geometry": "MultiPolygon", "area_km2": 120.2, "geohash": "9vr3x1p", "tags": ["coastal"]},
  {"attributes": {"huc12": "080301010101", "name": "Upper Yazoo", "areasqkm": "9.75", "states": "MS"},
   "geometry": "Polygon", "area_km2": 9.8, "geohash": "9vy0k3z", "tags": []}
]`

func defaultAttrs(t *testing.T) attrs.AttrList {
	t.Helper()
	al := attrs.AttrList{}
	require.NoError(t, al.Set("huc12,name,.area_km2"))
	return al
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		delimiter string
		want      []Filter
	}{
		{name: "empty spec", spec: ""},
		{
			name: "exact match",
			spec: "huc12=080902030506",
			want: []Filter{{Key: "huc12", Operand: "=", Target: "080902030506"}},
		},
		{
			name: "negated prefix",
			spec: "huc12!^0809",
			want: []Filter{{Key: "huc12", Operand: "^", Target: "0809", Negate: true}},
		},
		{
			name: "several",
			spec: "states=LA,areasqkm>50",
			want: []Filter{
				{Key: "states", Operand: "=", Target: "LA"},
				{Key: "areasqkm", Operand: ">", Target: "50"},
			},
		},
		{
			name: "regex",
			spec: "name/^Bayou",
			want: []Filter{{Key: "name", Operand: "/", Target: "^Bayou"}},
		},
		{
			name: "invalid entries skipped",
			spec: "name=Delta,bogus,=x",
			want: []Filter{{Key: "name", Operand: "=", Target: "Delta"}},
		},
		{
			name:      "custom delimiter",
			spec:      "name@Bayou|states=LA",
			delimiter: "|",
			want: []Filter{
				{Key: "name", Operand: "@", Target: "Bayou"},
				{Key: "states", Operand: "=", Target: "LA"},
			},
		},
		{
			name: "empty target",
			spec: "name=",
			want: []Filter{{Key: "name", Operand: "=", Target: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delimiter != "" {
				t.Setenv(EnvDelim, tt.delimiter)
			}
			got := BuildFilters(tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		value  string
		filter Filter
		want   bool
	}{
		{"Delta", Filter{Operand: "=", Target: "Delta"}, true},
		{"Delta", Filter{Operand: "=", Target: "delta"}, false},
		{"Delta", Filter{Operand: "=", Target: "Delta", Negate: true}, false},
		{"Delta", Filter{Operand: "~", Target: "DELTA"}, true},
		{"080902030506", Filter{Operand: "^", Target: "0809"}, true},
		{"Bayou Terrebonne", Filter{Operand: "@", Target: "Terre"}, true},
		{"Bayou Terrebonne", Filter{Operand: "/", Target: `^Bayou\s`}, true},
		{"Bayou Terrebonne", Filter{Operand: "/", Target: `(`}, false},
		// Numeric strings compare as numbers.
		{"9.75", Filter{Operand: "<", Target: "50"}, true},
		{"120.25", Filter{Operand: ">", Target: "50"}, true},
		{"120.25", Filter{Operand: ">", Target: "50", Negate: true}, false},
		// Otherwise lexically.
		{"LA", Filter{Operand: "<", Target: "MS"}, true},
		{"x", Filter{Operand: "?", Target: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.value+tt.filter.Operand+tt.filter.Target, func(t *testing.T) {
			assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckNumericOperand(t *testing.T) {
	assert.True(t, checkNumericOperand(95.47, Filter{Operand: ">", Target: "90"}))
	assert.False(t, checkNumericOperand(95.47, Filter{Operand: "<", Target: "90"}))
	assert.True(t, checkNumericOperand(12, Filter{Operand: "=", Target: " 12 "}))
	assert.False(t, checkNumericOperand(12, Filter{Operand: "=", Target: "twelve"}))
	assert.True(t, checkNumericOperand(95.47, Filter{Operand: "^", Target: "95."}))
}

func TestCheckContainsOperand(t *testing.T) {
	tags := []any{"coastal", "delta"}
	assert.True(t, checkContainsOperand(tags, Filter{Operand: "@", Target: "delta"}))
	assert.False(t, checkContainsOperand(tags, Filter{Operand: "@", Target: "upland"}))
	assert.True(t, checkContainsOperand(tags, Filter{Operand: "@", Target: "upland", Negate: true}))

	m := map[string]any{"LA": true}
	assert.True(t, checkContainsOperand(m, Filter{Operand: "@", Target: "LA"}))
	assert.False(t, checkContainsOperand(m, Filter{Operand: "@", Target: "LA", Negate: true}))

	assert.False(t, checkContainsOperand(42, Filter{Operand: "@", Target: "4"}))
}

func TestMatch(t *testing.T) {
	al := defaultAttrs(t)
	rows := gjson.Parse(records).Array()

	tests := []struct {
		name string
		spec string
		want []bool
	}{
		{"no filters", "", []bool{true, true, true}},
		{"listed column", "huc12^0809", []bool{true, true, false}},
		{"unlisted column", "states=MS", []bool{false, false, true}},
		{"numeric root value", "area_km2>50", []bool{true, true, false}},
		{"root key", ".geometry=MultiPolygon", []bool{false, true, false}},
		{"contains in array", ".tags@delta", []bool{true, false, false}},
		{"all must hold", "states=LA,name@Bayou", []bool{false, true, false}},
		{"missing column", "nope=1", []bool{false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := BuildFilters(tt.spec)
			for i, row := range rows {
				assert.Equal(t, tt.want[i], Match(row, al, filters), "row %d", i)
			}
		})
	}
}

func TestFilterDataset(t *testing.T) {
	al := defaultAttrs(t)

	results, indexes := FilterDataset(gjson.Parse(records), al, "states=LA")
	require.Len(t, results, 2)
	assert.Equal(t, []int{0, 1}, indexes)
	assert.Equal(t, map[string]any{
		"huc12":    "080902030506",
		"name":     "Delta",
		"area_km2": 95.47,
	}, results[0])

	results, indexes = FilterDataset(gjson.Parse(records), al, "")
	assert.Len(t, results, 3)
	assert.Equal(t, []int{0, 1, 2}, indexes)

	results, indexes = FilterDataset(gjson.Parse(`[]`), al, "states=LA")
	assert.Empty(t, results)
	assert.Empty(t, indexes)
}
