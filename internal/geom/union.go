// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package geom

import (
	"math"
	"slices"
	"sort"

	polyclip "github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Union merges the areal geometries into one. A single input is returned as
// is, so dissolving one region reproduces its geometry exactly. Non areal
// inputs are ignored. Returns nil when nothing areal remains.
func Union(geoms ...orb.Geometry) orb.Geometry {
	var areal []orb.Geometry
	for _, g := range geoms {
		switch g.(type) {
		case orb.Polygon, orb.MultiPolygon, orb.Ring, orb.Bound:
			areal = append(areal, g)
		}
	}

	switch len(areal) {
	case 0:
		return nil
	case 1:
		return areal[0]
	}

	acc := toClip(areal[0])
	for _, g := range areal[1:] {
		acc = acc.Construct(polyclip.UNION, toClip(g))
	}
	return fromClip(acc)
}

// toClip flattens every ring of g into polyclip contours. polyclip resolves
// holes by even-odd containment, so orientation is irrelevant here.
func toClip(g orb.Geometry) polyclip.Polygon {
	var out polyclip.Polygon
	for _, r := range Rings(g) {
		if len(r) < 4 {
			continue
		}
		c := make(polyclip.Contour, 0, len(r)-1)
		for _, p := range r[:len(r)-1] {
			c = append(c, polyclip.Point{X: p[0], Y: p[1]})
		}
		out = append(out, c)
	}
	return out
}

// fromClip turns polyclip contours back into polygons. Contours nested an
// even number of times are shells, odd ones are holes of their innermost
// enclosing shell.
func fromClip(p polyclip.Polygon) orb.Geometry {
	rings := make([]orb.Ring, 0, len(p))
	for _, c := range p {
		if len(c) < 3 {
			continue
		}
		r := make(orb.Ring, 0, len(c)+1)
		for _, pt := range c {
			r = append(r, orb.Point{pt.X, pt.Y})
		}
		r = append(r, r[0])
		rings = append(rings, r)
	}
	return Assemble(rings)
}

// Assemble groups closed rings into polygons by containment depth and
// orients them per RFC 7946: shells counter-clockwise, holes clockwise.
// A single shell yields an orb.Polygon, several yield an orb.MultiPolygon.
func Assemble(rings []orb.Ring) orb.Geometry {
	var shells, holes []orb.Ring
	for i, r := range rings {
		depth := 0
		area := math.Abs(planar.Area(r))
		for j, other := range rings {
			if i == j || math.Abs(planar.Area(other)) <= area {
				continue
			}
			if Within(r, other) {
				depth++
			}
		}
		if depth%2 == 0 {
			shells = append(shells, r)
		} else {
			holes = append(holes, r)
		}
	}
	return Group(shells, holes)
}

// Group builds polygons from rings already classified as shells and holes.
// Each hole joins the smallest shell it lies within; a hole with no shell
// is kept as a shell. Orientation follows Assemble.
func Group(shells, holes []orb.Ring) orb.Geometry {
	for _, h := range holes {
		if !slices.ContainsFunc(shells, func(s orb.Ring) bool { return Within(h, s) }) {
			shells = append(shells, h)
		}
	}

	// Larger shells first, for a stable order.
	sort.SliceStable(shells, func(a, b int) bool {
		return math.Abs(planar.Area(shells[a])) > math.Abs(planar.Area(shells[b]))
	})

	polys := make(orb.MultiPolygon, len(shells))
	for i, s := range shells {
		if s.Orientation() != orb.CCW {
			s.Reverse()
		}
		polys[i] = orb.Polygon{s}
	}

	for _, h := range holes {
		owner := -1
		for k := len(shells) - 1; k >= 0; k-- {
			if Within(h, shells[k]) {
				owner = k
				break
			}
		}
		if owner < 0 {
			continue
		}
		if h.Orientation() != orb.CW {
			h.Reverse()
		}
		polys[owner] = append(polys[owner], h)
	}

	switch len(polys) {
	case 0:
		return nil
	case 1:
		return polys[0]
	}
	return polys
}

// Within reports whether inner lies inside outer. Vertices on the boundary
// of outer are skipped, so rings that only touch are not nested.
func Within(inner, outer orb.Ring) bool {
	for _, p := range inner {
		if onBoundary(outer, p) {
			continue
		}
		return planar.RingContains(outer, p)
	}
	return false
}

const boundaryEps = 1e-12

func onBoundary(r orb.Ring, p orb.Point) bool {
	for i := 0; i+1 < len(r); i++ {
		a, b := r[i], r[i+1]
		cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
		if math.Abs(cross) > boundaryEps*math.Max(1, math.Abs(b[0]-a[0])+math.Abs(b[1]-a[1])) {
			continue
		}
		if p[0] >= math.Min(a[0], b[0])-boundaryEps && p[0] <= math.Max(a[0], b[0])+boundaryEps &&
			p[1] >= math.Min(a[1], b[1])-boundaryEps && p[1] <= math.Max(a[1], b[1])+boundaryEps {
			return true
		}
	}
	return false
}

// Rings returns every ring of an areal geometry.
func Rings(g orb.Geometry) []orb.Ring {
	switch v := g.(type) {
	case orb.Ring:
		return []orb.Ring{v}
	case orb.Bound:
		return []orb.Ring{v.ToRing()}
	case orb.Polygon:
		return v
	case orb.MultiPolygon:
		var out []orb.Ring
		for _, p := range v {
			out = append(out, p...)
		}
		return out
	}
	return nil
}
