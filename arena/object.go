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

import (
	"math"

	"github.com/DavidKarlas/libosmium/model"
)

// Object is the shared fixed layout of Node, Way, and Relation: an Item
// header, followed by id/deleted/version/timestamp/uid/changeset, followed
// (Node only) by a Location, followed by a length-prefixed user name,
// followed by zero or more sub-item records.
//
// Field offsets are relative to the Item's payload, i.e. to
// Item.payloadOffset().
const (
	offID             = 0
	offDeletedVersion = 8
	offTimestamp      = 12
	offUID            = 16
	offChangeset      = 20
	objectFixedSize   = 24
	locationSize      = 8
)

// object wraps an Item known to be a Node, Way, or Relation.
type object struct {
	Item
}

// ID returns the object's primary key.
func (o object) ID() int64 {
	return o.buf.getI64(o.payloadOffset() + offID)
}

// Deleted reports whether this version of the object is a deletion.
func (o object) Deleted() bool {
	return o.buf.getU32(o.payloadOffset()+offDeletedVersion)&1 != 0
}

// Version returns the object's edit version.
func (o object) Version() int32 {
	return int32(o.buf.getU32(o.payloadOffset()+offDeletedVersion) >> 1)
}

// Timestamp returns the object's edit timestamp.
func (o object) Timestamp() model.Timestamp {
	return model.Timestamp(o.buf.getU32(o.payloadOffset() + offTimestamp))
}

// UID returns the editing user's id.
func (o object) UID() uint32 {
	return o.buf.getU32(o.payloadOffset() + offUID)
}

// Changeset returns the changeset this version was written in.
func (o object) Changeset() uint32 {
	return o.buf.getU32(o.payloadOffset() + offChangeset)
}

// userOffset is the byte offset, relative to the Item payload, where the
// object's fixed fields end and the length-prefixed user string begins.
// hasLocation distinguishes Node (which carries an inline Location) from
// Way/Relation (which don't).
func userOffset(hasLocation bool) uint32 {
	if hasLocation {
		return objectFixedSize + locationSize
	}

	return objectFixedSize
}

// userAt returns the object's user name.
func (o object) userAt(hasLocation bool) string {
	off := o.payloadOffset() + userOffset(hasLocation)
	n := o.buf.getU16(off)

	return string(o.buf.bytes[off+2 : off+2+uint32(n)])
}

// firstSubItemOffset returns the offset of the first sub-item (TagList,
// WayNodeList, RelationMemberList) following the user string.
func (o object) firstSubItemOffset(hasLocation bool) uint32 {
	off := o.payloadOffset() + userOffset(hasLocation)
	n := uint32(o.buf.getU16(off))

	return padded(off + 2 + n)
}

// subItems iterates the sub-items of this object: everything between the
// user string and the end of the record, as delimited by Item.next().
func (o object) subItems(hasLocation bool) func(func(Item) bool) {
	return func(yield func(Item) bool) {
		end := o.next()

		for off := o.firstSubItemOffset(hasLocation); off < end; {
			it := Item{buf: o.buf, off: off}
			nxt := it.next()

			if !yield(it) {
				return
			}

			off = nxt
		}
	}
}

// tagListOf scans the sub-items of the object for its TagList, if any.
func tagListOf(o object, hasLocation bool) (TagList, bool) {
	for it := range o.subItems(hasLocation) {
		if it.Type() == TypeTagList {
			return TagList{it}, true
		}
	}

	return TagList{}, false
}

// writeObjectHeader reserves and fills an Object's fixed fields plus, for
// nodes, a Location slot initialized to the undefined sentinel, plus the
// user string. It returns the builder for the Item itself; the caller is
// responsible for its own Type-specific wrapper and for adding any
// sub-items before calling Finish.
func writeObjectHeader(
	buf *Buffer,
	typ Type,
	hasLocation bool,
	id int64,
	deleted bool,
	version int32,
	timestamp model.Timestamp,
	uid uint32,
	changeset uint32,
	user string,
) (*builder, error) {
	bld, err := newBuilder(buf, typ, nil)
	if err != nil {
		return nil, err
	}

	if _, err := buf.reserve(objectFixedSize); err != nil {
		bld.abort()
		return nil, err
	}

	payload := bld.item().payloadOffset()

	buf.putI64(payload+offID, id)

	dv := uint32(version) << 1
	if deleted {
		dv |= 1
	}

	buf.putU32(payload+offDeletedVersion, dv)
	buf.putU32(payload+offTimestamp, uint32(timestamp))
	buf.putU32(payload+offUID, uid)
	buf.putU32(payload+offChangeset, changeset)

	if hasLocation {
		locOff, err := buf.reserve(locationSize)
		if err != nil {
			bld.abort()
			return nil, err
		}

		buf.putI32(locOff, model.UndefinedLocation.X)
		buf.putI32(locOff+4, model.UndefinedLocation.Y)
	}

	if err := writeString(buf, user); err != nil {
		bld.abort()
		return nil, err
	}

	if err := buf.alignWrite(); err != nil {
		bld.abort()
		return nil, err
	}

	return bld, nil
}

// writeString appends a u16-length-prefixed UTF-8 string at the current
// write pointer. The caller is responsible for realigning the write
// pointer afterward -- firstSubItemOffset reads the string back at a
// padded offset, so an unaligned pointer here would desync writer and
// reader.
func writeString(buf *Buffer, s string) error {
	if len(s) > math.MaxUint16 {
		return ErrNestedSizeOverflow
	}

	off, err := buf.reserve(2)
	if err != nil {
		return err
	}

	buf.putU16(off, uint16(len(s)))

	_, err = buf.appendBytes([]byte(s))

	return err
}
