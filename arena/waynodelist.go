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

package arena

import "github.com/DavidKarlas/libosmium/model"

// wayNodeEntrySize is the fixed size of one WayNodeList entry: an 8-byte
// node reference followed by an 8-byte Location, already Alignment-sized so
// entries never need individual padding.
const wayNodeEntrySize = 16

// WayNodeList is the ordered sequence of node references, with their
// resolved coordinates, that make up a Way's geometry.
type WayNodeList struct {
	Item
}

// Len returns the number of node references in the list.
func (wl WayNodeList) Len() int {
	return int((wl.next() - wl.payloadOffset()) / wayNodeEntrySize)
}

// At returns the node reference and resolved location at index i.
func (wl WayNodeList) At(i int) (ref int64, loc model.Location) {
	off := wl.payloadOffset() + uint32(i)*wayNodeEntrySize

	return wl.buf.getI64(off), model.Location{X: wl.buf.getI32(off + 8), Y: wl.buf.getI32(off + 12)}
}

// Nodes iterates the (ref, Location) pairs in order.
func (wl WayNodeList) Nodes() func(func(int64, model.Location) bool) {
	return func(yield func(int64, model.Location) bool) {
		n := wl.Len()
		for i := 0; i < n; i++ {
			ref, loc := wl.At(i)
			if !yield(ref, loc) {
				return
			}
		}
	}
}

// WayNodeListBuilder builds a WayNodeList sub-item. Construct via a
// WayBuilder's AddWayNodeList.
type WayNodeListBuilder struct {
	*builder
}

func newWayNodeListBuilder(buf *Buffer, parent *builder) (*WayNodeListBuilder, error) {
	b, err := newBuilder(buf, TypeWayNodeList, parent)
	if err != nil {
		return nil, err
	}

	return &WayNodeListBuilder{b}, nil
}

// AddNode appends one node reference. loc may be model.UndefinedLocation
// when the referenced node's coordinate was not resolved (for example, a
// way whose nodes were not locatable, per LocationsOnWays Non-goals).
func (wb *WayNodeListBuilder) AddNode(ref int64, loc model.Location) error {
	off, err := wb.buf.reserve(wayNodeEntrySize)
	if err != nil {
		return err
	}

	wb.buf.putI64(off, ref)
	wb.buf.putI32(off+8, loc.X)
	wb.buf.putI32(off+12, loc.Y)

	return nil
}

// Finish patches the sub-item's size header.
func (wb *WayNodeListBuilder) Finish() error { return wb.finish() }

// Abort discards the sub-item, and everything written to its enclosing
// record since the last commit.
func (wb *WayNodeListBuilder) Abort() { wb.abort() }
