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

import "math"

// builder is the scoped-completion machinery shared by every Item-producing
// builder in this package (NodeBuilder, TagListBuilder, and so on). It
// reserves the Item header up front and patches it on Finish, the
// RAII-equivalent idiom for a language without destructors: callers are
// expected to `defer b.AbortIfOpen()` immediately after construction so an
// early return still discards a half-written record.
//
// parent links a nested builder (TagList, WayNodeList, ...) back to the
// Object builder that opened it, so a nested builder can assert it isn't
// used after its parent has already closed and so aborting it can close its
// ancestors too; finalized size never
// needs to be threaded back up because every byte a child writes lands
// before its parent's own Finish reads the shared write pointer.
type builder struct {
	buf       *Buffer
	headerOff uint32
	parent    *builder
	done      bool
}

func newBuilder(buf *Buffer, typ Type, parent *builder) (*builder, error) {
	if parent != nil && parent.done {
		return nil, ErrBuilderClosed
	}

	off, err := buf.reserve(HeaderSize)
	if err != nil {
		return nil, err
	}

	buf.putU16(off+4, uint16(typ))
	buf.putU16(off+6, 0)

	return &builder{buf: buf, headerOff: off, parent: parent}, nil
}

// finish pads the record to Alignment and patches its size header. It is
// the only path by which a record becomes part of the committed sequence
// once its outermost ancestor also finishes.
func (b *builder) finish() error {
	if b.done {
		return ErrBuilderClosed
	}

	if err := b.buf.alignWrite(); err != nil {
		return err
	}

	size := b.buf.write - b.headerOff
	if size > math.MaxUint32-Alignment {
		return ErrNestedSizeOverflow
	}

	b.buf.putU32(b.headerOff, size)
	b.done = true

	if b.parent == nil {
		b.buf.commit()
	}

	return nil
}

// abort discards this record by rolling back the entire in-progress Buffer
// transaction -- including any nested children already appended -- since
// all of it lives past the last commit point. A nested record cannot be cut
// out of its enclosing record on its own, so aborting a nested builder also
// closes every ancestor: the enclosing record is discarded with it, and a
// later Finish on an ancestor returns ErrBuilderClosed.
func (b *builder) abort() {
	if b.done {
		return
	}

	b.done = true

	for p := b.parent; p != nil; p = p.parent {
		p.done = true
	}

	b.buf.rollback()
}

// AbortIfOpen rolls back the builder if Finish was never called. Intended
// to be deferred right after construction.
func (b *builder) AbortIfOpen() {
	if !b.done {
		b.abort()
	}
}

// item returns the Item handle for the record this builder is writing.
func (b *builder) item() Item { return Item{buf: b.buf, off: b.headerOff} }
