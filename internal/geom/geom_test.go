// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, size float64) orb.Polygon {
	return orb.Polygon{{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}}
}

func TestUnionSingleIsIdentity(t *testing.T) {
	p := square(-90.1, 29.5, 0.1)
	assert.Equal(t, p, Union(p))
}

func TestUnionEmpty(t *testing.T) {
	assert.Nil(t, Union())
	assert.Nil(t, Union(orb.Point{1, 2}))
}

func TestUnionAdjacentSquares(t *testing.T) {
	got := Union(square(0, 0, 1), square(1, 0, 1))
	require.NotNil(t, got)
	assert.InDelta(t, 2.0, math.Abs(planar.Area(got)), 1e-9)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 1}}, got.Bound())
}

func TestUnionOverlap(t *testing.T) {
	got := Union(square(0, 0, 2), square(1, 1, 2))
	require.NotNil(t, got)
	assert.InDelta(t, 7.0, math.Abs(planar.Area(got)), 1e-9)
}

func TestUnionDisjoint(t *testing.T) {
	got := Union(square(0, 0, 1), square(5, 5, 1))
	mp, ok := got.(orb.MultiPolygon)
	require.True(t, ok, "disjoint inputs give a multipolygon, got %T", got)
	assert.Len(t, mp, 2)
	assert.InDelta(t, 2.0, math.Abs(planar.Area(got)), 1e-9)
}

func TestAssembleHoles(t *testing.T) {
	outer := orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}} // clockwise
	hole := orb.Ring{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}}      // counter-clockwise
	island := orb.Ring{{20, 20}, {21, 20}, {21, 21}, {20, 21}, {20, 20}}

	got := Assemble([]orb.Ring{hole, outer, island})
	mp, ok := got.(orb.MultiPolygon)
	require.True(t, ok)
	require.Len(t, mp, 2)

	require.Len(t, mp[0], 2, "big shell owns the hole")
	assert.Equal(t, orb.CCW, mp[0][0].Orientation())
	assert.Equal(t, orb.CW, mp[0][1].Orientation())
	assert.Len(t, mp[1], 1)
	assert.InDelta(t, 97.0, math.Abs(planar.Area(got)), 1e-9)
}

func TestAssembleTouchingParts(t *testing.T) {
	big := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	island := orb.Ring{{10, 0}, {11, 0}, {11, 1}, {10, 1}, {10, 0}}
	notch := orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}} // hole sharing a corner

	got := Assemble([]orb.Ring{big.Clone(), island.Clone()})
	mp, ok := got.(orb.MultiPolygon)
	require.True(t, ok)
	assert.Len(t, mp, 2)
	assert.InDelta(t, 101.0, planar.Area(got), 1e-9)

	got = Assemble([]orb.Ring{big.Clone(), notch.Clone()})
	p, ok := got.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, p, 2)
	assert.InDelta(t, 96.0, planar.Area(got), 1e-9)
}

func TestGroup(t *testing.T) {
	outer := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	lake := orb.Ring{{2, 2}, {8, 2}, {8, 8}, {2, 8}, {2, 2}}
	islet := orb.Ring{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}}
	pond := orb.Ring{{4.5, 4.5}, {5, 4.5}, {5, 5}, {4.5, 5}, {4.5, 4.5}}
	stray := orb.Ring{{20, 20}, {21, 20}, {21, 21}, {20, 21}, {20, 20}}

	got := Group([]orb.Ring{islet, outer}, []orb.Ring{pond, lake, stray})
	mp, ok := got.(orb.MultiPolygon)
	require.True(t, ok)
	require.Len(t, mp, 3)

	assert.Len(t, mp[0], 2, "outer owns the lake")
	assert.Len(t, mp[1], 2, "islet owns the pond")
	assert.Len(t, mp[2], 1, "stray hole kept as a shell")
	for _, poly := range mp {
		assert.Equal(t, orb.CCW, poly[0].Orientation())
		for _, h := range poly[1:] {
			assert.Equal(t, orb.CW, h.Orientation())
		}
	}
	assert.InDelta(t, 100-36+4-0.25+1, planar.Area(got), 1e-9)
}

func TestWithin(t *testing.T) {
	outer := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	tests := []struct {
		name  string
		inner orb.Ring
		want  bool
	}{
		{"inside", orb.Ring{{1, 1}, {2, 1}, {2, 2}, {1, 1}}, true},
		{"outside", orb.Ring{{11, 1}, {12, 1}, {12, 2}, {11, 1}}, false},
		{"starts on a shared vertex", orb.Ring{{10, 0}, {11, 0}, {11, 1}, {10, 0}}, false},
		{"starts on an edge", orb.Ring{{0, 5}, {1, 5}, {1, 6}, {0, 5}}, true},
		{"same ring", outer, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Within(tt.inner, outer))
		})
	}
}

func TestAreaKm2(t *testing.T) {
	// One degree square at the equator is about 12,364 km2.
	a := AreaKm2(square(0, 0, 1))
	assert.InDelta(t, 12364, a, 30)

	// Winding direction must not matter.
	cw := square(0, 0, 1)
	cw[0].Reverse()
	assert.InDelta(t, a, AreaKm2(cw), 1e-6)

	withHole := orb.Polygon{square(0, 0, 1)[0], square(0.25, 0.25, 0.5)[0]}
	assert.Less(t, AreaKm2(withHole), a)

	assert.Zero(t, AreaKm2(orb.Point{1, 1}))
}

func TestGeohash(t *testing.T) {
	h := Geohash(square(-90.5, 29.5, 0.1))
	assert.Len(t, h, geohashChars)
	assert.Equal(t, "9vr", h[:3])
	assert.Empty(t, Geohash(nil))
}
