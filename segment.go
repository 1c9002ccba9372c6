/*
Copyright © 2019 the InMAP authors.
This file is part of geomdist.

geomdist is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geomdist is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geomdist.  If not, see <http://www.gnu.org/licenses/>.
*/

package geomdist

import (
	"math"

	"github.com/ctessum/geom"
)

// pointDistance returns the distance between p0 and p1.
func pointDistance(p0, p1 geom.Point) float64 {
	return math.Hypot(p1.X-p0.X, p1.Y-p0.Y)
}

// pointSegmentDistance returns the distance from p to the segment with
// endpoints a and b, along with the point on the segment closest to p.
func pointSegmentDistance(p, a, b geom.Point) (float64, geom.Point) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 { // degenerate segment
		return pointDistance(p, a), a
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	c := geom.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return pointDistance(p, c), c
}

// segmentsDistance returns the minimum distance between segments a0-a1
// and b0-b1 and a pair of points, one on each segment, that are that
// distance apart. The distance is zero if the segments cross.
func segmentsDistance(a0, a1, b0, b1 geom.Point) (float64, [2]geom.Point) {
	if x, ok := segmentIntersection(a0, a1, b0, b1); ok {
		return 0, [2]geom.Point{x, x}
	}
	// The segments don't properly cross, so the minimum distance
	// involves an endpoint of at least one of them. Segments that touch
	// or overlap without crossing are covered here too, because then an
	// endpoint of one segment lies on the other.
	d, c := pointSegmentDistance(a0, b0, b1)
	min := d
	pts := [2]geom.Point{a0, c}
	if d, c = pointSegmentDistance(a1, b0, b1); d < min {
		min = d
		pts = [2]geom.Point{a1, c}
	}
	if d, c = pointSegmentDistance(b0, a0, a1); d < min {
		min = d
		pts = [2]geom.Point{c, b0}
	}
	if d, c = pointSegmentDistance(b1, a0, a1); d < min {
		min = d
		pts = [2]geom.Point{c, b1}
	}
	return min, pts
}

// segmentIntersection returns the point where segments a0-a1 and b0-b1
// properly cross, if they do. Parallel and collinear segments are
// reported as not crossing.
func segmentIntersection(a0, a1, b0, b1 geom.Point) (geom.Point, bool) {
	rx := a1.X - a0.X
	ry := a1.Y - a0.Y
	sx := b1.X - b0.X
	sy := b1.Y - b0.Y
	denom := rx*sy - ry*sx
	if denom == 0 {
		return geom.Point{}, false
	}
	t := ((b0.X-a0.X)*sy - (b0.Y-a0.Y)*sx) / denom
	u := ((b0.X-a0.X)*ry - (b0.Y-a0.Y)*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return geom.Point{}, false
	}
	return geom.Point{X: a0.X + t*rx, Y: a0.Y + t*ry}, true
}

// boundsDistance returns the separation between two axis-aligned
// bounding boxes, which is zero if they overlap. The separation is a
// lower bound on the distance between any point in one box and any
// point in the other.
func boundsDistance(b0, b1 *geom.Bounds) float64 {
	var dx float64
	if b0.Max.X < b1.Min.X {
		dx = b1.Min.X - b0.Max.X
	} else if b1.Max.X < b0.Min.X {
		dx = b0.Min.X - b1.Max.X
	}
	var dy float64
	if b0.Max.Y < b1.Min.Y {
		dy = b1.Min.Y - b0.Max.Y
	} else if b1.Max.Y < b0.Min.Y {
		dy = b0.Min.Y - b1.Max.Y
	}
	return math.Hypot(dx, dy)
}
