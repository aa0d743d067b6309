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

// TagList is a sequence of key/value string pairs attached to a Node, Way,
// or Relation. Its payload is a run of (key\0, value\0) pairs, each pair
// padded so the next one starts on an Alignment boundary.
type TagList struct {
	Item
}

// readCString returns the NUL-terminated string starting at off, and the
// number of bytes consumed including the terminator.
func readCString(buf *Buffer, off uint32) (string, uint32) {
	start := off
	for buf.bytes[off] != 0 {
		off++
	}

	return string(buf.bytes[start:off]), off - start + 1
}

// Tags iterates the (key, value) pairs in insertion order.
func (t TagList) Tags() func(func(string, string) bool) {
	return func(yield func(string, string) bool) {
		end := t.next()

		for off := t.payloadOffset(); off < end; {
			key, klen := readCString(t.buf, off)
			val, vlen := readCString(t.buf, off+klen)

			if !yield(key, val) {
				return
			}

			off = padded(off + klen + vlen)
		}
	}
}

// Len returns the number of tags in the list.
func (t TagList) Len() int {
	n := 0
	for range t.Tags() {
		n++
	}

	return n
}

// TagListBuilder builds a TagList sub-item. Construct with
// NewTagListBuilder, or via an Object builder's AddTagList.
type TagListBuilder struct {
	*builder
}

// NewTagListBuilder opens a standalone TagList, not nested within an
// Object. Most callers will instead go through an Object builder's
// AddTagList.
func NewTagListBuilder(buf *Buffer) (*TagListBuilder, error) {
	return newTagListBuilder(buf, nil)
}

func newTagListBuilder(buf *Buffer, parent *builder) (*TagListBuilder, error) {
	b, err := newBuilder(buf, TypeTagList, parent)
	if err != nil {
		return nil, err
	}

	return &TagListBuilder{b}, nil
}

// AddTag appends one key/value pair.
func (tb *TagListBuilder) AddTag(key, val string) error {
	if _, err := tb.buf.appendBytes(append([]byte(key), 0)); err != nil {
		return err
	}

	if _, err := tb.buf.appendBytes(append([]byte(val), 0)); err != nil {
		return err
	}

	return tb.buf.alignWrite()
}

// Finish patches the sub-item's size header.
func (tb *TagListBuilder) Finish() error { return tb.finish() }

// Abort discards the sub-item. If this TagList is nested inside an Object
// builder, the whole enclosing record is discarded too, since Abort on a
// top-level builder rolls back every byte written since the last commit.
func (tb *TagListBuilder) Abort() { tb.abort() }
