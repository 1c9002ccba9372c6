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

import "github.com/ctessum/geom"

// pointSegIndex is the segment index reported for locations on
// geometries that have no segments.
const pointSegIndex = 0

// A GeometryLocation describes where, within one of the geometries
// involved in a distance calculation, a point of interest lies.
type GeometryLocation struct {
	// Geom is the atomic sub-geometry (a single point, line string,
	// polygon, or polygon ring) containing the location. It is a
	// back-reference for reporting only.
	Geom geom.Geom

	// SegmentIndex is the index of the line segment containing the
	// location when Geom is linear. The location may lie in the
	// interior of the segment rather than on a vertex. For non-linear
	// geometries it is pointSegIndex.
	SegmentIndex int

	// Point is the actual location.
	Point geom.Point
}

// newPointLocation returns a location for a point p on geometry g that
// is not associated with any particular segment.
func newPointLocation(g geom.Geom, p geom.Point) GeometryLocation {
	return GeometryLocation{Geom: g, SegmentIndex: pointSegIndex, Point: p}
}
