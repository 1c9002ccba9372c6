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
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// A GeomIndex is a spatial index over a set of candidate geometries
// that can be searched for the candidates nearest to, or within a given
// distance of, a query geometry. It indexes bounding boxes only; exact
// distances are resolved with DistanceOps. The index is read-only after
// creation and safe for concurrent searches.
type GeomIndex struct {
	tree *rtree.Rtree
	n    int
}

// indexedGeom attaches the position of a geometry in the input slice to
// the geometry stored in the index.
type indexedGeom struct {
	geom.Geom
	i int
}

// NewGeomIndex creates a spatial index over geoms. It returns an error
// if geoms is empty or any geometry is nil or has no coordinates.
func NewGeomIndex(geoms []geom.Geom) (*GeomIndex, error) {
	if len(geoms) == 0 {
		return nil, fmt.Errorf("geomdist: creating index: no geometries")
	}
	tree := rtree.NewTree(25, 50)
	for i, g := range geoms {
		if g == nil {
			return nil, fmt.Errorf("geomdist: creating index: geometry %d: %w", i, ErrNilGeometry)
		}
		if len(connectedElementPoints(g)) == 0 {
			return nil, fmt.Errorf("geomdist: creating index: geometry %d: %w", i, ErrEmptyGeometry)
		}
		tree.Insert(&indexedGeom{Geom: g, i: i})
	}
	return &GeomIndex{tree: tree, n: len(geoms)}, nil
}

// Len returns the number of indexed geometries.
func (x *GeomIndex) Len() int {
	return x.n
}

// Nearest returns the position (in the slice the index was created
// from) of the indexed geometry nearest to q, along with the distance
// between them. When several candidates are equally near, the one at
// the lowest position wins.
func (x *GeomIndex) Nearest(q geom.Geom) (int, float64, error) {
	if q == nil {
		return 0, 0, fmt.Errorf("geomdist: nearest: %w", ErrNilGeometry)
	}
	if len(connectedElementPoints(q)) == 0 {
		return 0, 0, fmt.Errorf("geomdist: nearest: %w", ErrEmptyGeometry)
	}
	qb := q.Bounds()

	// Search an expanding window around the query until it contains a
	// candidate, then widen it once more to the best distance found so
	// that no closer candidate outside the window can be missed: a
	// candidate whose box doesn't overlap the window widened by m is
	// more than m away.
	margin := math.Max(qb.Max.X-qb.Min.X, qb.Max.Y-qb.Min.Y)
	if margin <= 0 {
		margin = 1
	}
	for {
		hits := x.tree.SearchIntersect(expandBounds(qb, margin))
		if len(hits) == 0 {
			margin *= 2
			continue
		}
		best := -1
		bestDist := math.MaxFloat64
		for _, h := range hits {
			c := h.(*indexedGeom)
			if boundsDistance(qb, c.Bounds()) > bestDist {
				continue
			}
			op, err := NewDistanceOp(q, c.Geom)
			if err != nil {
				return 0, 0, err
			}
			if d := op.Distance(); d < bestDist || (d == bestDist && c.i < best) {
				best = c.i
				bestDist = d
			}
		}
		if bestDist <= margin {
			return best, bestDist, nil
		}
		margin = bestDist
	}
}

// WithinDistance returns the positions, in ascending order, of the
// indexed geometries whose minimum distance to q is no greater than d.
func (x *GeomIndex) WithinDistance(q geom.Geom, d float64) ([]int, error) {
	if q == nil {
		return nil, fmt.Errorf("geomdist: within distance: %w", ErrNilGeometry)
	}
	if len(connectedElementPoints(q)) == 0 {
		return nil, fmt.Errorf("geomdist: within distance: %w", ErrEmptyGeometry)
	}
	var o []int
	for _, h := range x.tree.SearchIntersect(expandBounds(q.Bounds(), d)) {
		c := h.(*indexedGeom)
		within, err := IsWithinDistance(q, c.Geom, d)
		if err != nil {
			return nil, err
		}
		if within {
			o = append(o, c.i)
		}
	}
	sort.Ints(o)
	return o, nil
}

// expandBounds returns b grown by m on every side.
func expandBounds(b *geom.Bounds, m float64) *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: b.Min.X - m, Y: b.Min.Y - m},
		Max: geom.Point{X: b.Max.X + m, Y: b.Max.Y + m},
	}
}
