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
	"strconv"

	"github.com/golang/geo/s1"
)

// nanodegree is the fixed-point unit every PBF coordinate field is stored
// in: lon/lat values on the wire are integer nanodegrees before ToDegrees
// rescales them with a block's offset and granularity.
const nanodegree = 1e-9

// Degrees is the decimal degree representation of a longitude or latitude.
// Every lon/lat value in this package's types (Location, BoundingBox)
// resolves down to this one underlying type.
type Degrees float64

// Angle is Degrees expressed in radians, for code that wants to hand a
// coordinate to github.com/golang/geo's spherical geometry types.
type Angle s1.Angle

// Epsilon names a comparison precision for EqualWithin, expressed as a
// fraction of a degree. Tests and bounding-box comparisons use the named
// constants below rather than a raw float so the precision being asked for
// reads at the call site.
type Epsilon float64

const (
	Degree           Degrees = 1
	radiansPerPi             = 180
	Radian                   = (radiansPerPi / math.Pi) * Degree
	MinutesPerDegree         = 60
	SecondsPerDegree         = 3600

	// E5 through E9 name the precision, in degrees, that OSM's coordinate
	// encodings commonly round to: E7 is PBF's native nanodegree/100
	// resolution, E5 is the coarser resolution some OSM XML dumps use.
	E5 Epsilon = 1e-5
	E6 Epsilon = 1e-6
	E7 Epsilon = 1e-7
	E8 Epsilon = 1e-8
	E9 Epsilon = 1e-9

	hundredThousandths = 100_000
	millionths         = 1_000_000
	tenMillionths      = 10_000_000

	roundingBias = 0.5
)

// Angle converts d to radians.
func (d Degrees) Angle() Angle { return Angle(float64(d) * float64(s1.Degree)) }

// String renders d as degrees-minutes-seconds, e.g. `53° 7' 24.42"`.
func (d Degrees) String() string {
	sign := ""
	if d < 0 {
		sign = "-"
	}

	val := math.Abs(float64(d))
	whole := math.Floor(val)
	minutes := math.Floor(MinutesPerDegree * (val - whole))
	seconds := SecondsPerDegree * (val - whole - minutes/MinutesPerDegree)
	// Round to a ten-thousandth of an arcsecond (finer than E7) so float
	// noise from the subtraction above does not reach the output.
	seconds = math.Round(seconds*1e4) / 1e4

	return fmt.Sprintf("%s%d° %d' %s\"", sign, int(whole), int(minutes), ftoa(seconds))
}

// MarshalJSON renders d as a bare decimal number rather than a quoted
// string.
func (d Degrees) MarshalJSON() ([]byte, error) {
	return []byte(ftoa(float64(d))), nil
}

// EqualWithin reports whether d and o round to the same multiple of eps.
func (d Degrees) EqualWithin(o Degrees, eps Epsilon) bool {
	return roundToInt(float64(d)/float64(eps)) == roundToInt(float64(o)/float64(eps))
}

// EqualWithin reports whether d and o round to the same multiple of eps.
func (d Angle) EqualWithin(o Angle, eps Epsilon) bool {
	return roundToInt(float64(d)/float64(eps)) == roundToInt(float64(o)/float64(eps))
}

// E5 rounds d to hundred-thousandths of a degree.
func (d Degrees) E5() int32 { return roundToInt(float64(d) * hundredThousandths) }

// E6 rounds d to millionths of a degree.
func (d Degrees) E6() int32 { return roundToInt(float64(d) * millionths) }

// E7 rounds d to ten-millionths of a degree, PBF's native resolution.
func (d Degrees) E7() int32 { return roundToInt(float64(d) * tenMillionths) }

// ToDegrees rescales a PBF fixed-point coordinate — offset plus
// granularity-scaled integer value, both in nanodegrees — into Degrees.
// Every lon/lat field on the wire (dense or plain, block-level bounding
// box or node) goes through this one conversion.
func ToDegrees(offset int64, granularity int32, coordinate int64) Degrees {
	return nanodegree * Degrees(offset+int64(granularity)*coordinate)
}

// roundToInt rounds half away from zero. Go's math.Round already does
// this; this copy exists so EqualWithin and the En methods share one
// call site instead of each open-coding the negative-value branch.
func roundToInt(val float64) int32 {
	if val < 0 {
		return int32(val - roundingBias)
	}

	return int32(val + roundingBias)
}

// ParseDegrees parses a plain decimal-degree string, e.g. from a command
// line flag or a header attribute.
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return Degrees(u), nil
}
