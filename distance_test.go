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
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
	"github.com/gonum/floats"
)

const testTolerance = 1.e-12

// square is a 10×10 box with its lower-left corner at the origin.
// The ring is deliberately left unclosed, as shapefile-derived
// polygons often are.
var square = geom.Polygon{{
	{X: 0, Y: 0},
	{X: 10, Y: 0},
	{X: 10, Y: 10},
	{X: 0, Y: 10},
}}

func TestDistance(t *testing.T) {
	tests := []struct {
		name   string
		g0, g1 geom.Geom
		d      float64
	}{
		{
			name: "parallel segments",
			g0:   geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 0}},
			g1:   geom.LineString{{X: 0, Y: 2}, {X: 1, Y: 2}},
			d:    2,
		},
		{
			name: "point in polygon",
			g0:   geom.Point{X: 5, Y: 5},
			g1:   square,
			d:    0,
		},
		{
			name: "point left of polygon",
			g0:   geom.Point{X: -5, Y: 5},
			g1:   square,
			d:    5,
		},
		{
			name: "identical segments",
			g0:   geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 0}},
			g1:   geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 0}},
			d:    0,
		},
		{
			name: "crossing segments",
			g0:   geom.LineString{{X: -1, Y: -1}, {X: 1, Y: 1}},
			g1:   geom.LineString{{X: -1, Y: 1}, {X: 1, Y: -1}},
			d:    0,
		},
		{
			name: "point on polygon edge",
			g0:   geom.Point{X: 0, Y: 5},
			g1:   square,
			d:    0,
		},
		{
			name: "crossing polygons with no contained vertices",
			g0:   geom.Polygon{{{X: -5, Y: -1}, {X: 5, Y: -1}, {X: 5, Y: 1}, {X: -5, Y: 1}}},
			g1:   geom.Polygon{{{X: -1, Y: -5}, {X: 1, Y: -5}, {X: 1, Y: 5}, {X: -1, Y: 5}}},
			d:    0,
		},
		{
			name: "polygon in polygon",
			g0:   geom.Polygon{{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}},
			g1:   square,
			d:    0,
		},
		{
			name: "disjoint polygons",
			g0:   square,
			g1:   geom.Polygon{{{X: 13, Y: 0}, {X: 14, Y: 0}, {X: 14, Y: 10}, {X: 13, Y: 10}}},
			d:    3,
		},
		{
			name: "point pair",
			g0:   geom.Point{X: 0, Y: 0},
			g1:   geom.Point{X: 3, Y: 4},
			d:    5,
		},
		{
			name: "multipoint to line",
			g0:   geom.MultiPoint{{X: 0, Y: 7}, {X: 0, Y: 3}},
			g1:   geom.LineString{{X: 2, Y: 0}, {X: 2, Y: 10}},
			d:    2,
		},
		{
			// A line with one vertex has no segments; it must be
			// measured as the point it degenerates to, not skipped.
			name: "single-vertex line to point",
			g0:   geom.LineString{{X: 0, Y: 0}},
			g1:   geom.Point{X: 3, Y: 4},
			d:    5,
		},
		{
			name: "single-vertex line in polygon",
			g0:   geom.MultiLineString{{{X: 5, Y: 5}}},
			g1:   square,
			d:    0,
		},
		{
			name: "nested collection",
			g0: geom.GeometryCollection{
				geom.Point{X: 100, Y: 100},
				geom.GeometryCollection{
					geom.LineString{{X: 0, Y: 20}, {X: 10, Y: 20}},
				},
			},
			g1: square,
			d:  10,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Distance(test.g0, test.g1)
			if err != nil {
				t.Fatal(err)
			}
			if !floats.EqualWithinAbsOrRel(d, test.d, testTolerance, testTolerance) {
				t.Errorf("distance = %g, want %g", d, test.d)
			}
			// The result must not depend on the input order.
			d2, err := Distance(test.g1, test.g0)
			if err != nil {
				t.Fatal(err)
			}
			if d2 != d {
				t.Errorf("reversed distance = %g, want %g", d2, d)
			}
		})
	}
}

func TestDistanceOp_closestPoints(t *testing.T) {
	op, err := NewDistanceOp(
		geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 0}},
		geom.LineString{{X: 0, Y: 2}, {X: 1, Y: 2}},
	)
	if err != nil {
		t.Fatal(err)
	}
	pts := op.ClosestPoints()
	if pts[0].Y != 0 || pts[1].Y != 2 {
		t.Errorf("closest points %v not on their lines", pts)
	}
	if pts[0].X != pts[1].X {
		t.Errorf("closest points %v are not vertically aligned", pts)
	}
}

func TestDistanceOp_closestPointOnEdge(t *testing.T) {
	op, err := NewDistanceOp(geom.Point{X: -5, Y: 5}, square)
	if err != nil {
		t.Fatal(err)
	}
	want := [2]geom.Point{{X: -5, Y: 5}, {X: 0, Y: 5}}
	if pts := op.ClosestPoints(); !reflect.DeepEqual(pts, want) {
		t.Errorf("closest points = %v, want %v", pts, want)
	}
}

func TestDistanceOp_containment(t *testing.T) {
	// The contained point comes second, so the recorded location pair
	// must be swapped back into input order.
	op, err := NewDistanceOp(square, geom.Point{X: 5, Y: 5})
	if err != nil {
		t.Fatal(err)
	}
	if d := op.Distance(); d != 0 {
		t.Errorf("distance = %g, want 0", d)
	}
	locs := op.ClosestLocations()
	if _, ok := locs[0].Geom.(geom.Polygon); !ok {
		t.Errorf("location 0 is on %T, want geom.Polygon", locs[0].Geom)
	}
	if _, ok := locs[1].Geom.(geom.Point); !ok {
		t.Errorf("location 1 is on %T, want geom.Point", locs[1].Geom)
	}
	want := geom.Point{X: 5, Y: 5}
	if locs[0].Point != want || locs[1].Point != want {
		t.Errorf("closest points = %v, %v; want %v on both sides",
			locs[0].Point, locs[1].Point, want)
	}
}

func TestDistanceOp_closestLocations(t *testing.T) {
	l0 := geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	l1 := geom.LineString{{X: 2, Y: 3}, {X: 2, Y: 2}}
	op, err := NewDistanceOp(l0, l1)
	if err != nil {
		t.Fatal(err)
	}
	if d := op.Distance(); d != 2 {
		t.Errorf("distance = %g, want 2", d)
	}
	locs := op.ClosestLocations()
	if locs[0].SegmentIndex != 1 {
		t.Errorf("segment index 0 = %d, want 1", locs[0].SegmentIndex)
	}
	if locs[1].SegmentIndex != 0 {
		t.Errorf("segment index 1 = %d, want 0", locs[1].SegmentIndex)
	}
	if want := (geom.Point{X: 2, Y: 0}); locs[0].Point != want {
		t.Errorf("closest point 0 = %v, want %v", locs[0].Point, want)
	}
	if want := (geom.Point{X: 2, Y: 2}); locs[1].Point != want {
		t.Errorf("closest point 1 = %v, want %v", locs[1].Point, want)
	}
}

func TestIsWithinDistance(t *testing.T) {
	tests := []struct {
		name   string
		g0, g1 geom.Geom
		d      float64
		within bool
	}{
		{
			name:   "far point",
			g0:     square,
			g1:     geom.Point{X: 20, Y: 5},
			d:      1,
			within: false,
		},
		{
			name:   "near point",
			g0:     square,
			g1:     geom.Point{X: 10.5, Y: 5},
			d:      1,
			within: true,
		},
		{
			name:   "contained point",
			g0:     square,
			g1:     geom.Point{X: 5, Y: 5},
			d:      0,
			within: true,
		},
		{
			name:   "threshold exactly reached",
			g0:     geom.Point{X: 0, Y: 0},
			g1:     geom.Point{X: 3, Y: 0},
			d:      3,
			within: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			within, err := IsWithinDistance(test.g0, test.g1, test.d)
			if err != nil {
				t.Fatal(err)
			}
			if within != test.within {
				t.Errorf("within %g = %v, want %v", test.d, within, test.within)
			}
			// IsWithinDistance must agree with the exact distance even
			// though it may stop early.
			d, err := Distance(test.g0, test.g1)
			if err != nil {
				t.Fatal(err)
			}
			if want := d <= test.d; within != want {
				t.Errorf("within %g = %v, but distance = %g", test.d, within, d)
			}
		})
	}
}

// TestDistanceOp_terminate checks that a terminated search still
// reports an achievable distance, even if not the global minimum.
func TestDistanceOp_terminate(t *testing.T) {
	g0 := geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 0}}
	g1 := geom.LineString{{X: 0, Y: 2}, {X: 1, Y: 2}}
	op, err := NewDistanceOpTerminate(g0, g1, 5)
	if err != nil {
		t.Fatal(err)
	}
	d := op.Distance()
	if d > 5 {
		t.Errorf("terminated distance = %g, want ≤ 5", d)
	}
	pts := op.ClosestPoints()
	if got := pointDistance(pts[0], pts[1]); !floats.EqualWithinAbsOrRel(got, d, testTolerance, testTolerance) {
		t.Errorf("reported pair is %g apart, want %g", got, d)
	}
}

func TestDistanceOp_memoized(t *testing.T) {
	op, err := NewDistanceOp(geom.Point{X: -5, Y: 5}, square)
	if err != nil {
		t.Fatal(err)
	}
	d := op.Distance()
	locs := op.ClosestLocations()
	for i := 0; i < 3; i++ {
		if d2 := op.Distance(); d2 != d {
			t.Fatalf("distance changed from %g to %g on call %d", d, d2, i)
		}
		if locs2 := op.ClosestLocations(); !reflect.DeepEqual(locs2, locs) {
			t.Fatalf("locations changed on call %d", i)
		}
	}
}

func TestNewDistanceOp_invalidInput(t *testing.T) {
	valid := geom.Point{X: 0, Y: 0}
	if _, err := NewDistanceOp(nil, valid); !errors.Is(err, ErrNilGeometry) {
		t.Errorf("nil first geometry: got %v, want ErrNilGeometry", err)
	}
	if _, err := NewDistanceOp(valid, nil); !errors.Is(err, ErrNilGeometry) {
		t.Errorf("nil second geometry: got %v, want ErrNilGeometry", err)
	}
	if _, err := NewDistanceOp(geom.LineString{}, valid); !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("empty line string: got %v, want ErrEmptyGeometry", err)
	}
	if _, err := NewDistanceOp(valid, geom.GeometryCollection{geom.MultiPoint{}}); !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("collection of empty geometries: got %v, want ErrEmptyGeometry", err)
	}
}

// TestDistance_pointsOnGeometries checks that the reported closest
// points actually lie on their respective geometries.
func TestDistance_pointsOnGeometries(t *testing.T) {
	p := geom.Point{X: 20, Y: 20}
	op, err := NewDistanceOp(p, square)
	if err != nil {
		t.Fatal(err)
	}
	pts := op.ClosestPoints()
	d := op.Distance()
	if got := pointDistance(pts[0], pts[1]); math.Abs(got-d) > testTolerance {
		t.Errorf("closest points are %g apart, but distance = %g", got, d)
	}
	if pts[0] != p {
		t.Errorf("closest point 0 = %v, want %v", pts[0], p)
	}
	// The closest point on the square is its northeast corner.
	if want := (geom.Point{X: 10, Y: 10}); pts[1] != want {
		t.Errorf("closest point 1 = %v, want %v", pts[1], want)
	}
}
