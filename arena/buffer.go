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

// GrowPolicy controls what a Buffer does when an append would exceed its
// current capacity. The policy is fixed for the lifetime of a Buffer.
type GrowPolicy int

const (
	// GrowExpand reallocates, doubling capacity as needed. Safe here in a
	// way it isn't in the source language this design is drawn from:
	// every reference into the arena is a (Buffer, offset) pair, never a
	// raw pointer, so a realloc never invalidates an outstanding Item or
	// Builder.
	GrowExpand GrowPolicy = iota

	// GrowFixed refuses growth, returning ErrBufferFull instead.
	GrowFixed
)

// Buffer is a growable, contiguous arena holding a sequence of
// self-describing Items. Bytes in [0, committed) are a well-formed sequence
// of Items visible to iteration; bytes in [committed, write) belong to an
// in-progress Builder and are not yet visible. A Buffer is meant to be
// written by exactly one goroutine at a time; once handed off to a reader,
// ownership transfers and the writer must not touch it again.
type Buffer struct {
	bytes     []byte
	committed uint32
	write     uint32
	policy    GrowPolicy
}

// NewBuffer returns an empty Buffer with the given initial capacity.
func NewBuffer(capacity int, policy GrowPolicy) *Buffer {
	if capacity < HeaderSize {
		capacity = HeaderSize
	}

	return &Buffer{
		bytes:  make([]byte, capacity),
		policy: policy,
	}
}

// Cap returns the Buffer's current byte capacity.
func (b *Buffer) Cap() int { return len(b.bytes) }

// CommittedSize returns the number of bytes in the committed, iterable
// prefix of the Buffer.
func (b *Buffer) CommittedSize() uint32 { return b.committed }

// Clear resets the Buffer to empty, retaining its backing storage.
func (b *Buffer) Clear() {
	b.committed = 0
	b.write = 0
}

// ensure grows the backing array, if allowed, so that write+n bytes fit.
func (b *Buffer) ensure(n uint32) error {
	need := b.write + n
	if need <= uint32(len(b.bytes)) {
		return nil
	}

	if b.policy == GrowFixed {
		return ErrBufferFull
	}

	newCap := uint32(len(b.bytes))
	if newCap == 0 {
		newCap = HeaderSize
	}

	for newCap < need {
		newCap *= 2
	}

	grown := make([]byte, newCap)
	copy(grown, b.bytes[:b.write])
	b.bytes = grown

	return nil
}

// reserve advances the write pointer by n zero-filled bytes and returns the
// offset it started at.
func (b *Buffer) reserve(n uint32) (uint32, error) {
	if err := b.ensure(n); err != nil {
		return 0, err
	}

	off := b.write
	for i := off; i < off+n; i++ {
		b.bytes[i] = 0
	}

	b.write += n

	return off, nil
}

// appendBytes writes p at the current write pointer and advances it.
func (b *Buffer) appendBytes(p []byte) (uint32, error) {
	off, err := b.reserve(uint32(len(p)))
	if err != nil {
		return 0, err
	}

	copy(b.bytes[off:], p)

	return off, nil
}

// alignWrite pads the write pointer up to the next Alignment boundary with
// zero bytes.
func (b *Buffer) alignWrite() error {
	pad := padded(b.write) - b.write
	if pad == 0 {
		return nil
	}

	_, err := b.reserve(pad)

	return err
}

// commit publishes everything written since the last commit, making it
// visible to iteration.
func (b *Buffer) commit() { b.committed = b.write }

// rollback discards everything written since the last commit.
func (b *Buffer) rollback() { b.write = b.committed }

func (b *Buffer) putU16(off uint32, v uint16) { binary.LittleEndian.PutUint16(b.bytes[off:], v) }
func (b *Buffer) putU32(off uint32, v uint32) { binary.LittleEndian.PutUint32(b.bytes[off:], v) }
func (b *Buffer) putU64(off uint32, v uint64) { binary.LittleEndian.PutUint64(b.bytes[off:], v) }
func (b *Buffer) putI32(off uint32, v int32)  { b.putU32(off, uint32(v)) }
func (b *Buffer) putI64(off uint32, v int64)  { b.putU64(off, uint64(v)) }

func (b *Buffer) getU16(off uint32) uint16 { return binary.LittleEndian.Uint16(b.bytes[off:]) }
func (b *Buffer) getU32(off uint32) uint32 { return binary.LittleEndian.Uint32(b.bytes[off:]) }
func (b *Buffer) getU64(off uint32) uint64 { return binary.LittleEndian.Uint64(b.bytes[off:]) }
func (b *Buffer) getI32(off uint32) int32  { return int32(b.getU32(off)) }
func (b *Buffer) getI64(off uint32) int64  { return int64(b.getU64(off)) }

// Item returns a handle onto the record header at off. The caller is
// responsible for off being a valid Item boundary.
func (b *Buffer) Item(off uint32) Item { return Item{buf: b, off: off} }

// Items returns a forward-only, restartable iterator over the committed
// Items in insertion order. When skipRemoved is true, Items flagged Removed
// are skipped.
func (b *Buffer) Items(skipRemoved bool) func(func(Item) bool) {
	return func(yield func(Item) bool) {
		off := uint32(0)
		for off < b.committed {
			it := Item{buf: b, off: off}
			next := it.next()

			if !skipRemoved || !it.Removed() {
				if !yield(it) {
					return
				}
			}

			off = next
		}
	}
}

// Nodes iterates the committed Items of type Node.
func (b *Buffer) Nodes(skipRemoved bool) func(func(Node) bool) {
	return func(yield func(Node) bool) {
		for it := range b.Items(skipRemoved) {
			if it.Type() == TypeNode {
				if !yield(Node{it}) {
					return
				}
			}
		}
	}
}

// Ways iterates the committed Items of type Way.
func (b *Buffer) Ways(skipRemoved bool) func(func(Way) bool) {
	return func(yield func(Way) bool) {
		for it := range b.Items(skipRemoved) {
			if it.Type() == TypeWay {
				if !yield(Way{it}) {
					return
				}
			}
		}
	}
}

// Relations iterates the committed Items of type Relation.
func (b *Buffer) Relations(skipRemoved bool) func(func(Relation) bool) {
	return func(yield func(Relation) bool) {
		for it := range b.Items(skipRemoved) {
			if it.Type() == TypeRelation {
				if !yield(Relation{it}) {
					return
				}
			}
		}
	}
}

// Changesets iterates the committed Items of type Changeset.
func (b *Buffer) Changesets(skipRemoved bool) func(func(Changeset) bool) {
	return func(yield func(Changeset) bool) {
		for it := range b.Items(skipRemoved) {
			if it.Type() == TypeChangeset {
				if !yield(Changeset{it}) {
					return
				}
			}
		}
	}
}
