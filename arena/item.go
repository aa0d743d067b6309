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

import "encoding/binary"

// Alignment is the byte boundary every Item starts and ends on.
const Alignment = 8

// HeaderSize is the size, in bytes, of the Item header that precedes every
// record in a Buffer.
const HeaderSize = 8

// Type is a tag identifying what kind of record an Item holds. The set is
// closed for this package's purposes but left open to extension.
type Type uint16

const (
	TypeUndefined Type = iota
	TypeNode
	TypeWay
	TypeRelation
	TypeChangeset
	TypeTagList
	TypeWayNodeList
	TypeRelationMemberList
	TypeInnerRing
	TypeOuterRing
)

func (t Type) String() string {
	switch t {
	case TypeNode:
		return "Node"
	case TypeWay:
		return "Way"
	case TypeRelation:
		return "Relation"
	case TypeChangeset:
		return "Changeset"
	case TypeTagList:
		return "TagList"
	case TypeWayNodeList:
		return "WayNodeList"
	case TypeRelationMemberList:
		return "RelationMemberList"
	case TypeInnerRing:
		return "InnerRing"
	case TypeOuterRing:
		return "OuterRing"
	default:
		return "Undefined"
	}
}

// Item is a lightweight handle onto one record's header within a Buffer. It
// is nothing but a (Buffer, offset) pair: growing the Buffer never
// invalidates an Item, because every field access re-reads through the
// offset rather than through a previously captured slice.
type Item struct {
	buf *Buffer
	off uint32
}

// Offset returns the byte offset of the Item's header within its Buffer.
func (it Item) Offset() uint32 { return it.off }

// Size returns the total, alignment-padded byte length of the record,
// header included. Adding Size to Offset yields the offset of the next
// Item.
func (it Item) Size() uint32 { return binary.LittleEndian.Uint32(it.buf.bytes[it.off:]) }

// Type returns the record's type tag.
func (it Item) Type() Type { return Type(binary.LittleEndian.Uint16(it.buf.bytes[it.off+4:])) }

// Removed reports whether the record has been logically deleted.
func (it Item) Removed() bool {
	return binary.LittleEndian.Uint16(it.buf.bytes[it.off+6:]) != 0
}

// SetRemoved flags or unflags the record for logical deletion. This is the
// only mutation permitted on a committed Item.
func (it Item) SetRemoved(removed bool) {
	var v uint16
	if removed {
		v = 1
	}

	binary.LittleEndian.PutUint16(it.buf.bytes[it.off+6:], v)
}

// payloadOffset is the offset immediately following the Item header, where
// type-specific content begins.
func (it Item) payloadOffset() uint32 { return it.off + HeaderSize }

// next returns the offset of the record immediately following it.
func (it Item) next() uint32 { return it.off + it.Size() }

// padded rounds n up to the next multiple of Alignment.
func padded(n uint32) uint32 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}
