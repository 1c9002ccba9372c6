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

package geomdistutil

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
)

// ReadGeometryFile reads a GeoJSON geometry from the file at path.
// Bare geometries, features, and feature collections are accepted; a
// feature collection with more than one feature becomes a geometry
// collection.
func ReadGeometryFile(path string) (geom.Geom, error) {
	b, err := ioutil.ReadFile(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("reading geometry file: %w", err)
	}
	g, err := decodeGeometry(b)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return g, nil
}

func decodeGeometry(b []byte) (geom.Geom, error) {
	var probe struct {
		Type     string          `json:"type"`
		Geometry json.RawMessage `json:"geometry"`
		Features []struct {
			Geometry json.RawMessage `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, err
	}
	switch probe.Type {
	case "Feature":
		return geojson.Decode(probe.Geometry)
	case "FeatureCollection":
		if len(probe.Features) == 0 {
			return nil, fmt.Errorf("feature collection has no features")
		}
		if len(probe.Features) == 1 {
			return geojson.Decode(probe.Features[0].Geometry)
		}
		gc := make(geom.GeometryCollection, len(probe.Features))
		for i, f := range probe.Features {
			g, err := geojson.Decode(f.Geometry)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			gc[i] = g
		}
		return gc, nil
	default:
		return geojson.Decode(b)
	}
}

// encodePoint returns p as GeoJSON.
func encodePoint(p geom.Point) string {
	b, err := geojson.Encode(p)
	if err != nil { // Points are always encodable.
		panic(err)
	}
	return string(b)
}
