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

// MemberType identifies which kind of entity a RelationMember refers to.
// The numeric values match the OSM PBF wire encoding, so a decoder can
// store the raw value without translation.
type MemberType uint16

const (
	MemberNode MemberType = iota
	MemberWay
	MemberRelation
)

func (t MemberType) String() string {
	switch t {
	case MemberNode:
		return "Node"
	case MemberWay:
		return "Way"
	case MemberRelation:
		return "Relation"
	default:
		return "Unknown"
	}
}

// relMemberFixedSize is the fixed portion of one RelationMemberList entry,
// preceding its NUL-terminated role string: a MemberType, a reserved flags
// field (always zero; decode from PBF never sets it, reserved for a future
// inlined-member feature), padding, and the member reference.
const relMemberFixedSize = 16

// RelationMemberList is the ordered sequence of typed, named references
// that make up a Relation's membership.
type RelationMemberList struct {
	Item
}

// Members iterates the (type, ref, role) triples in order.
func (rl RelationMemberList) Members() func(func(MemberType, int64, string) bool) {
	return func(yield func(MemberType, int64, string) bool) {
		end := rl.next()

		for off := rl.payloadOffset(); off < end; {
			typ := MemberType(rl.buf.getU16(off))
			ref := rl.buf.getI64(off + 8)
			role, rlen := readCString(rl.buf, off+relMemberFixedSize)

			if !yield(typ, ref, role) {
				return
			}

			off = padded(off + relMemberFixedSize + rlen)
		}
	}
}

// Len returns the number of members in the list.
func (rl RelationMemberList) Len() int {
	n := 0
	rl.Members()(func(MemberType, int64, string) bool {
		n++
		return true
	})

	return n
}

// RelationMemberListBuilder builds a RelationMemberList sub-item. Construct
// via a RelationBuilder's AddRelationMemberList.
type RelationMemberListBuilder struct {
	*builder
}

func newRelationMemberListBuilder(buf *Buffer, parent *builder) (*RelationMemberListBuilder, error) {
	b, err := newBuilder(buf, TypeRelationMemberList, parent)
	if err != nil {
		return nil, err
	}

	return &RelationMemberListBuilder{b}, nil
}

// AddMember appends one typed, named member reference.
func (rb *RelationMemberListBuilder) AddMember(typ MemberType, ref int64, role string) error {
	off, err := rb.buf.reserve(relMemberFixedSize)
	if err != nil {
		return err
	}

	rb.buf.putU16(off, uint16(typ))
	rb.buf.putI64(off+8, ref)

	if _, err := rb.buf.appendBytes(append([]byte(role), 0)); err != nil {
		return err
	}

	return rb.buf.alignWrite()
}

// Finish patches the sub-item's size header.
func (rb *RelationMemberListBuilder) Finish() error { return rb.finish() }

// Abort discards the sub-item, and everything written to its enclosing
// record since the last commit.
func (rb *RelationMemberListBuilder) Abort() { rb.abort() }
