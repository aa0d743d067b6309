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

import "fmt"

// The coordinate system's hard limits, used as InitialBoundingBox's
// starting corners: an empty box has no valid Top/Bottom/Left/Right until
// the first ExpandWith* call pulls each edge inward.
const (
	MaxLat Degrees = 90.0
	MaxLon Degrees = 180.0
	MinLat Degrees = -90.0
	MinLon Degrees = -180.0
)

// BoundingBox is a PBF header's declared extent, or an extent accumulated
// by scanning a file's nodes. Top/Bottom/Left/Right follow the PBF
// HeaderBBox field order rather than the more common
// min-lon/min-lat/max-lon/max-lat pairing.
type BoundingBox struct {
	Top    Degrees
	Left   Degrees
	Bottom Degrees
	Right  Degrees
}

// InitialBoundingBox returns a box inverted to the coordinate system's
// limits, so that expanding it with any real point immediately replaces
// every edge.
func InitialBoundingBox() *BoundingBox {
	return &BoundingBox{
		Top:    MinLat,
		Left:   MaxLon,
		Bottom: MaxLat,
		Right:  MinLon,
	}
}

// BoundingBoxFromPBF rescales a PBF HeaderBBox, given in nanodegree units,
// into a BoundingBox of decimal degrees. The HeaderBBox fields are already
// plain nanodegree integers (not the offset/granularity pair a block's
// node coordinates use), so the rescale here is ToDegrees with an implicit
// offset of 0 and granularity of 1.
func BoundingBoxFromPBF(left, right, top, bottom int64) *BoundingBox {
	const noOffset, unitGranularity = 0, 1

	return &BoundingBox{
		Left:   ToDegrees(noOffset, unitGranularity, left),
		Right:  ToDegrees(noOffset, unitGranularity, right),
		Top:    ToDegrees(noOffset, unitGranularity, top),
		Bottom: ToDegrees(noOffset, unitGranularity, bottom),
	}
}

// Contains reports whether the point (lat, lng) falls within b, edges
// inclusive.
func (b *BoundingBox) Contains(lat, lng Degrees) bool {
	return b.Left <= lng && lng <= b.Right && b.Bottom <= lat && lat <= b.Top
}

// EqualWithin reports whether every edge of b and o round to the same
// multiple of eps.
func (b *BoundingBox) EqualWithin(o *BoundingBox, eps Epsilon) bool {
	return b.Top.EqualWithin(o.Top, eps) &&
		b.Bottom.EqualWithin(o.Bottom, eps) &&
		b.Left.EqualWithin(o.Left, eps) &&
		b.Right.EqualWithin(o.Right, eps)
}

// ExpandWithLatLng grows b, if necessary, so it contains (lat, lng).
func (b *BoundingBox) ExpandWithLatLng(lat, lng Degrees) {
	if lat > b.Top {
		b.Top = lat
	}

	if lat < b.Bottom {
		b.Bottom = lat
	}

	if lng < b.Left {
		b.Left = lng
	}

	if lng > b.Right {
		b.Right = lng
	}
}

// ExpandWithBoundingBox grows b, if necessary, so it contains other. The
// two ExpandWithLatLng calls below are not independent corner expansions:
// the first pulls in other's Top/Left, the second other's Bottom/Right,
// and because other.Bottom <= other.Top and other.Left <= other.Right, the
// second call always corrects any edge the first call touched with the
// wrong one of other's two lat (or lng) values.
func (b *BoundingBox) ExpandWithBoundingBox(other *BoundingBox) {
	b.ExpandWithLatLng(other.Top, other.Left)
	b.ExpandWithLatLng(other.Bottom, other.Right)
}

// String renders b as "[(top, left) (bottom, right)]".
func (b *BoundingBox) String() string {
	return fmt.Sprintf("[(%s, %s) (%s, %s)]",
		ftoa(float64(b.Top)), ftoa(float64(b.Left)),
		ftoa(float64(b.Bottom)), ftoa(float64(b.Right)))
}
