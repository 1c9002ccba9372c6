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

// Package geomdist calculates minimum distances between planar
// geometries. It operates on the geometry types in
// github.com/ctessum/geom: points, line strings, polygons, their
// Multi* forms, and arbitrarily nested geometry collections.
package geomdist

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// Version gives the version number of this library.
const Version = "0.1.0"

// Errors returned when a distance calculation is given an invalid
// geometry.
var (
	ErrNilGeometry   = errors.New("nil geometry")
	ErrEmptyGeometry = errors.New("geometry has no coordinates")
)

// A DistanceOp calculates the minimum distance between two geometries,
// along with a pair of points, one on each geometry, that are that
// distance apart. The search runs at most once per DistanceOp no matter
// how many of the accessor methods are called.
//
// When more than one point pair is exactly the minimum distance apart,
// the reported pair is the first one found in traversal order. Which
// pair that is may change if the components of the input geometries are
// reordered, so it should not be relied on.
//
// A DistanceOp is not safe for concurrent use, but separate DistanceOps
// may run on separate goroutines as long as the geometries they measure
// are not modified.
type DistanceOp struct {
	geoms             [2]geom.Geom
	terminateDistance float64

	computed    bool
	minDistance float64
	locations   [2]GeometryLocation
}

// NewDistanceOp creates an operation to calculate the minimum distance
// between g0 and g1. It returns an error if either geometry is nil or
// has no coordinates. Geometries containing NaN coordinates give
// undefined results.
func NewDistanceOp(g0, g1 geom.Geom) (*DistanceOp, error) {
	return NewDistanceOpTerminate(g0, g1, 0)
}

// NewDistanceOpTerminate is like NewDistanceOp, except that the search
// is allowed to stop as soon as it finds a point pair separated by
// terminateDistance or less. When the search stops early, Distance
// reports the separation of the pair that triggered the stop, which is
// at most terminateDistance but not necessarily the global minimum.
func NewDistanceOpTerminate(g0, g1 geom.Geom, terminateDistance float64) (*DistanceOp, error) {
	for i, g := range []geom.Geom{g0, g1} {
		if g == nil {
			return nil, fmt.Errorf("geomdist: geometry %d: %w", i, ErrNilGeometry)
		}
		if len(connectedElementPoints(g)) == 0 {
			return nil, fmt.Errorf("geomdist: geometry %d: %w", i, ErrEmptyGeometry)
		}
	}
	return &DistanceOp{
		geoms:             [2]geom.Geom{g0, g1},
		terminateDistance: terminateDistance,
		minDistance:       math.MaxFloat64,
	}, nil
}

// Distance returns the minimum distance between g0 and g1.
func Distance(g0, g1 geom.Geom) (float64, error) {
	op, err := NewDistanceOp(g0, g1)
	if err != nil {
		return 0, err
	}
	return op.Distance(), nil
}

// IsWithinDistance reports whether the minimum distance between g0 and
// g1 is no greater than d. It can be cheaper than comparing Distance
// against d because the search stops as soon as the answer is known.
func IsWithinDistance(g0, g1 geom.Geom, d float64) (bool, error) {
	op, err := NewDistanceOpTerminate(g0, g1, d)
	if err != nil {
		return false, err
	}
	return op.Distance() <= d, nil
}

// ClosestPoints returns a pair of points, the first on g0 and the
// second on g1, that are the minimum distance apart.
func ClosestPoints(g0, g1 geom.Geom) ([2]geom.Point, error) {
	op, err := NewDistanceOp(g0, g1)
	if err != nil {
		return [2]geom.Point{}, err
	}
	return op.ClosestPoints(), nil
}

// Distance returns the minimum distance between the two geometries.
func (op *DistanceOp) Distance() float64 {
	op.compute()
	return op.minDistance
}

// ClosestPoints returns a pair of points that are the minimum distance
// apart, ordered to match the input geometries. The points may lie in
// the interiors of segments rather than on vertices.
func (op *DistanceOp) ClosestPoints() [2]geom.Point {
	op.compute()
	return [2]geom.Point{op.locations[0].Point, op.locations[1].Point}
}

// ClosestLocations returns the closest point pair along with the
// sub-geometry and segment each point lies on, ordered to match the
// input geometries.
func (op *DistanceOp) ClosestLocations() [2]GeometryLocation {
	op.compute()
	return op.locations
}

func (op *DistanceOp) compute() {
	if op.computed {
		return
	}
	op.computed = true
	if op.containmentDistance() {
		return
	}
	op.facetDistance()
}

// update records dist and its location pair if dist improves on the
// best distance found so far, and reports whether the search may stop
// because the best distance has reached the terminate distance.
func (op *DistanceOp) update(dist float64, loc0, loc1 GeometryLocation) bool {
	if dist < op.minDistance {
		op.minDistance = dist
		op.locations = [2]GeometryLocation{loc0, loc1}
	}
	return op.minDistance <= op.terminateDistance
}

// containmentDistance checks whether a connected element of one
// geometry lies inside a polygon of the other, which makes the distance
// zero without any segment search. It reports whether the search is
// finished.
func (op *DistanceOp) containmentDistance() bool {
	polys0 := extractPolygons(op.geoms[0])
	polys1 := extractPolygons(op.geoms[1])

	if len(polys1) > 0 {
		if op.containedIn(connectedElementPoints(op.geoms[0]), polys1, false) {
			return true
		}
	}
	if len(polys0) > 0 {
		if op.containedIn(connectedElementPoints(op.geoms[1]), polys0, true) {
			return true
		}
	}
	return op.minDistance <= op.terminateDistance
}

// containedIn tests each probe location against each polygon. The first
// probe that is inside or on the edge of a polygon resolves the whole
// calculation with a zero distance. flip indicates that the probes come
// from the second input geometry, so the recorded pair must be swapped
// back into input order.
func (op *DistanceOp) containedIn(probes []GeometryLocation, polys []geom.Polygon, flip bool) bool {
	for _, probe := range probes {
		for _, poly := range polys {
			if probe.Point.Within(poly) == geom.Outside {
				continue
			}
			op.minDistance = 0
			polyLoc := newPointLocation(poly, probe.Point)
			if flip {
				op.locations = [2]GeometryLocation{polyLoc, probe}
			} else {
				op.locations = [2]GeometryLocation{probe, polyLoc}
			}
			return true
		}
	}
	return false
}

// facetDistance runs the brute-force search over segment pairs,
// segment-point pairs, and point pairs, in that order. Each sub-search
// reports whether the terminate distance has been reached, which
// unwinds every level of the search immediately.
func (op *DistanceOp) facetDistance() {
	lines0 := extractLines(op.geoms[0])
	lines1 := extractLines(op.geoms[1])
	points0 := extractPoints(op.geoms[0])
	points1 := extractPoints(op.geoms[1])

	if op.linesToLines(lines0, lines1) {
		return
	}
	if op.linesToPoints(lines0, points1, false) {
		return
	}
	if op.linesToPoints(lines1, points0, true) {
		return
	}
	op.pointsToPoints(points0, points1)
}

func (op *DistanceOp) linesToLines(lines0, lines1 []geom.LineString) bool {
	// Bounds calculation scans every coordinate, so compute each
	// component's box once rather than once per pair.
	bounds1 := make([]*geom.Bounds, len(lines1))
	for j, l1 := range lines1 {
		bounds1[j] = l1.Bounds()
	}
	for _, l0 := range lines0 {
		b0 := l0.Bounds()
		for j, l1 := range lines1 {
			// A pair of lines whose bounding boxes are already
			// separated by more than the best distance found so far
			// can't improve on it.
			if boundsDistance(b0, bounds1[j]) > op.minDistance {
				continue
			}
			if op.lineToLine(l0, l1) {
				return true
			}
		}
	}
	return false
}

func (op *DistanceOp) lineToLine(l0, l1 geom.LineString) bool {
	for i := 0; i < len(l0)-1; i++ {
		for j := 0; j < len(l1)-1; j++ {
			d, pts := segmentsDistance(l0[i], l0[i+1], l1[j], l1[j+1])
			loc0 := GeometryLocation{Geom: l0, SegmentIndex: i, Point: pts[0]}
			loc1 := GeometryLocation{Geom: l1, SegmentIndex: j, Point: pts[1]}
			if op.update(d, loc0, loc1) {
				return true
			}
		}
	}
	return false
}

func (op *DistanceOp) linesToPoints(lines []geom.LineString, points []geom.Point, flip bool) bool {
	pointBounds := make([]*geom.Bounds, len(points))
	for j, p := range points {
		pointBounds[j] = p.Bounds()
	}
	for _, l := range lines {
		b := l.Bounds()
		for j, p := range points {
			if boundsDistance(b, pointBounds[j]) > op.minDistance {
				continue
			}
			if op.lineToPoint(l, p, flip) {
				return true
			}
		}
	}
	return false
}

func (op *DistanceOp) lineToPoint(l geom.LineString, p geom.Point, flip bool) bool {
	for i := 0; i < len(l)-1; i++ {
		d, c := pointSegmentDistance(p, l[i], l[i+1])
		lineLoc := GeometryLocation{Geom: l, SegmentIndex: i, Point: c}
		pointLoc := newPointLocation(p, p)
		var done bool
		if flip {
			done = op.update(d, pointLoc, lineLoc)
		} else {
			done = op.update(d, lineLoc, pointLoc)
		}
		if done {
			return true
		}
	}
	return false
}

func (op *DistanceOp) pointsToPoints(points0, points1 []geom.Point) {
	for _, p0 := range points0 {
		for _, p1 := range points1 {
			// For two points the closest pair is simply the points
			// themselves.
			d := pointDistance(p0, p1)
			if op.update(d, newPointLocation(p0, p0), newPointLocation(p1, p1)) {
				return
			}
		}
	}
}
