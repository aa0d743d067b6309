// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"fmt"
	"math"
)

// CoordinatePrecision is the number of fixed-point units per degree used by
// Location: ten millionths of a degree, matching the OSM PBF wire precision.
const CoordinatePrecision = 10_000_000

// lonlatResolution is the PBF wire resolution for lon/lat, in nanodegrees,
// before rescaling to CoordinatePrecision.
const lonlatResolution = 1_000_000_000

// undefinedCoordinate is the sentinel value of an unset Location component.
const undefinedCoordinate = math.MinInt32

// Location is a fixed-point longitude/latitude pair in units of
// 1/CoordinatePrecision of a degree. The sentinel UndefinedLocation means
// "no location recorded" and is distinct from any valid coordinate.
type Location struct {
	X int32 // longitude
	Y int32 // latitude
}

// UndefinedLocation is the sentinel Location written for nodes that carry no
// coordinate, e.g. tombstoned nodes in a historical dump.
var UndefinedLocation = Location{X: undefinedCoordinate, Y: undefinedCoordinate}

// Defined reports whether l is anything other than the sentinel.
func (l Location) Defined() bool {
	return l != UndefinedLocation
}

// Lon returns the longitude in decimal degrees.
func (l Location) Lon() Degrees {
	return Degrees(l.X) / CoordinatePrecision
}

// Lat returns the latitude in decimal degrees.
func (l Location) Lat() Degrees {
	return Degrees(l.Y) / CoordinatePrecision
}

// Valid reports whether l satisfies -180 <= lon <= 180 and -90 <= lat <= 90.
// The sentinel is never valid.
func (l Location) Valid() bool {
	if !l.Defined() {
		return false
	}

	lon, lat := l.Lon(), l.Lat()

	return lon >= MinLon && lon <= MaxLon && lat >= MinLat && lat <= MaxLat
}

func (l Location) String() string {
	if !l.Defined() {
		return "(undefined)"
	}

	return fmt.Sprintf("(%s, %s)", ftoa(float64(l.Lon())), ftoa(float64(l.Lat())))
}

// LocationFromDegrees converts a decimal-degree lon/lat pair into a Location,
// rounding to the nearest CoordinatePrecision unit.
func LocationFromDegrees(lon, lat Degrees) Location {
	return Location{
		X: roundToInt(float64(lon) * CoordinatePrecision),
		Y: roundToInt(float64(lat) * CoordinatePrecision),
	}
}

// LocationFromPBF rescales a delta-decoded PBF lon/lat pair (in
// lonlatResolution nanodegree units, relative to offset and granularity)
// into a Location expressed in CoordinatePrecision units. All arithmetic is
// done in 64 bits, with the division by the resolution ratio applied last,
// per the wire-format rescaling rule.
func LocationFromPBF(lon, lat, lonOffset, latOffset int64, granularity int32) Location {
	const factor = lonlatResolution / CoordinatePrecision

	x := (lonOffset + int64(granularity)*lon) / factor
	y := (latOffset + int64(granularity)*lat) / factor

	return Location{X: int32(x), Y: int32(y)}
}
