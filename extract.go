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

// extractPolygons returns the polygons g is made of, in traversal order.
func extractPolygons(g geom.Geom) []geom.Polygon {
	var polys []geom.Polygon
	switch g := g.(type) {
	case geom.Polygon:
		polys = append(polys, g)
	case geom.MultiPolygon:
		for _, p := range g {
			polys = append(polys, p)
		}
	case geom.GeometryCollection:
		for _, gg := range g {
			polys = append(polys, extractPolygons(gg)...)
		}
	}
	return polys
}

// extractLines returns the linear components of g in traversal order.
// Polygon rings count as linear components; a ring that doesn't repeat
// its first point at the end is closed before being returned. A line
// string with fewer than two vertices has no segments and is left out;
// extractPoints picks up single-vertex lines instead.
func extractLines(g geom.Geom) []geom.LineString {
	var lines []geom.LineString
	switch g := g.(type) {
	case geom.LineString:
		if len(g) > 1 {
			lines = append(lines, g)
		}
	case geom.MultiLineString:
		for _, l := range g {
			if len(l) > 1 {
				lines = append(lines, l)
			}
		}
	case geom.Polygon:
		for _, ring := range g {
			if len(ring) > 0 {
				lines = append(lines, closeRing(ring))
			}
		}
	case geom.MultiPolygon:
		for _, p := range g {
			for _, ring := range p {
				if len(ring) > 0 {
					lines = append(lines, closeRing(ring))
				}
			}
		}
	case geom.GeometryCollection:
		for _, gg := range g {
			lines = append(lines, extractLines(gg)...)
		}
	}
	return lines
}

// closeRing returns ring as a line string, appending a copy of the
// first point if the ring is not already closed.
func closeRing(ring []geom.Point) geom.LineString {
	if len(ring) > 1 && ring[0].Equals(ring[len(ring)-1]) {
		return geom.LineString(ring)
	}
	l := make(geom.LineString, len(ring)+1)
	copy(l, ring)
	l[len(ring)] = ring[0]
	return l
}

// extractPoints returns the standalone points in g, in traversal order.
// Vertices of lines and polygons are not included, except that a line
// string with a single vertex degenerates to that point so that it is
// still measurable.
func extractPoints(g geom.Geom) []geom.Point {
	var points []geom.Point
	switch g := g.(type) {
	case geom.Point:
		points = append(points, g)
	case geom.MultiPoint:
		for _, p := range g {
			points = append(points, p)
		}
	case geom.LineString:
		if len(g) == 1 {
			points = append(points, g[0])
		}
	case geom.MultiLineString:
		for _, l := range g {
			if len(l) == 1 {
				points = append(points, l[0])
			}
		}
	case geom.GeometryCollection:
		for _, gg := range g {
			points = append(points, extractPoints(gg)...)
		}
	}
	return points
}

// connectedElementPoints returns one representative coordinate for each
// atomic (non-collection) sub-geometry of g, in traversal order, each
// paired with the sub-geometry it represents. A single point per
// connected element is enough to decide whether the whole element lies
// inside a polygon of another geometry: an element with parts on both
// sides of the polygon boundary is at zero distance from it anyway.
func connectedElementPoints(g geom.Geom) []GeometryLocation {
	var locs []GeometryLocation
	switch g := g.(type) {
	case geom.Point:
		locs = append(locs, newPointLocation(g, g))
	case geom.MultiPoint:
		for _, p := range g {
			locs = append(locs, newPointLocation(p, p))
		}
	case geom.LineString:
		if len(g) > 0 {
			locs = append(locs, newPointLocation(g, g[0]))
		}
	case geom.MultiLineString:
		for _, l := range g {
			if len(l) > 0 {
				locs = append(locs, newPointLocation(l, l[0]))
			}
		}
	case geom.Polygon:
		if len(g) > 0 && len(g[0]) > 0 {
			locs = append(locs, newPointLocation(g, g[0][0]))
		}
	case geom.MultiPolygon:
		for _, p := range g {
			if len(p) > 0 && len(p[0]) > 0 {
				locs = append(locs, newPointLocation(p, p[0][0]))
			}
		}
	case geom.GeometryCollection:
		for _, gg := range g {
			locs = append(locs, connectedElementPoints(gg)...)
		}
	}
	return locs
}
