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

// Node is a point on the earth's surface. It is a read-only view onto an
// Item of TypeNode.
type Node struct {
	Item
}

func (n Node) object() object { return object{n.Item} }

func (n Node) ID() int64                    { return n.object().ID() }
func (n Node) Deleted() bool                { return n.object().Deleted() }
func (n Node) Version() int32               { return n.object().Version() }
func (n Node) Timestamp() model.Timestamp   { return n.object().Timestamp() }
func (n Node) UID() uint32                  { return n.object().UID() }
func (n Node) Changeset() uint32            { return n.object().Changeset() }
func (n Node) User() string                 { return n.object().userAt(true) }

func (n Node) locationOffset() uint32 {
	return n.payloadOffset() + objectFixedSize
}

// Location returns the node's coordinate, or ErrUndefinedLocation if none
// was ever set -- for example because the node was a tombstone with
// visible=false.
func (n Node) Location() (model.Location, error) {
	off := n.locationOffset()
	loc := model.Location{X: n.buf.getI32(off), Y: n.buf.getI32(off + 4)}

	if !loc.Defined() {
		return model.Location{}, ErrUndefinedLocation
	}

	return loc, nil
}

// Tags returns the node's TagList and whether it has one.
func (n Node) Tags() (TagList, bool) { return tagListOf(n.object(), true) }

// NodeBuilder builds a Node record. The zero value is not usable; construct
// with NewNodeBuilder.
type NodeBuilder struct {
	*builder
}

// NewNodeBuilder reserves and writes a Node's fixed header and user string.
// The node's Location starts as the undefined sentinel; call SetLocation to
// give it a coordinate. Callers should `defer nb.AbortIfOpen()` immediately
// so an error return discards the partial record.
func NewNodeBuilder(
	buf *Buffer,
	id int64,
	deleted bool,
	version int32,
	timestamp model.Timestamp,
	uid uint32,
	changeset uint32,
	user string,
) (*NodeBuilder, error) {
	b, err := writeObjectHeader(buf, TypeNode, true, id, deleted, version, timestamp, uid, changeset, user)
	if err != nil {
		return nil, err
	}

	return &NodeBuilder{b}, nil
}

// SetLocation patches the node's coordinate. It may be called at any point
// before Finish.
func (nb *NodeBuilder) SetLocation(loc model.Location) {
	off := nb.item().payloadOffset() + objectFixedSize
	nb.buf.putI32(off, loc.X)
	nb.buf.putI32(off+4, loc.Y)
}

// AddTagList opens a nested TagList sub-item. It must be added, and
// finished, before the NodeBuilder itself finishes.
func (nb *NodeBuilder) AddTagList() (*TagListBuilder, error) {
	return newTagListBuilder(nb.buf, nb.builder)
}

// Finish patches the record's size header and commits it (and everything
// nested within it) to the Buffer.
func (nb *NodeBuilder) Finish() error { return nb.finish() }

// Abort discards the record, rolling the Buffer back to its last commit.
func (nb *NodeBuilder) Abort() { nb.abort() }
