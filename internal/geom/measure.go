// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package geom

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/mmcloughlin/geohash"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// earthRadiusKm is the IUGG mean Earth radius.
const earthRadiusKm = 6371.0088

// geohashChars gives cells of roughly 150m, enough to tell HUC12s apart.
const geohashChars = 7

// AreaKm2 returns the geodesic area of an areal geometry in lon/lat degrees.
// Holes are subtracted.
func AreaKm2(g orb.Geometry) float64 {
	var total float64
	switch v := g.(type) {
	case orb.Polygon:
		for i, r := range v {
			a := ringSteradians(r)
			if i == 0 {
				total += a
			} else {
				total -= a
			}
		}
	case orb.MultiPolygon:
		for _, p := range v {
			total += AreaKm2(p)
		}
	case orb.Ring:
		total = ringSteradians(v)
	case orb.Bound:
		total = ringSteradians(v.ToRing())
	default:
		return 0
	}
	return total * earthRadiusKm * earthRadiusKm
}

// ringSteradians measures a ring on the unit sphere regardless of its
// winding direction.
func ringSteradians(r orb.Ring) float64 {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	if len(r) < 3 {
		return 0
	}
	pts := make([]s2.Point, 0, len(r))
	for _, p := range r {
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon())))
	}
	a := s2.LoopFromPoints(pts).Area()
	if a > 2*math.Pi {
		a = 4*math.Pi - a
	}
	return a
}

// Centroid returns the planar centroid of g.
func Centroid(g orb.Geometry) orb.Point {
	c, _ := planar.CentroidArea(g)
	return c
}

// Geohash encodes the centroid of g. Empty geometries yield "".
func Geohash(g orb.Geometry) string {
	if g == nil {
		return ""
	}
	c := Centroid(g)
	return geohash.EncodeWithPrecision(c.Lat(), c.Lon(), geohashChars)
}
