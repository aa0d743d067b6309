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

// Way is an ordered list of node references defining a polyline. It is a
// read-only view onto an Item of TypeWay.
type Way struct {
	Item
}

func (w Way) object() object { return object{w.Item} }

func (w Way) ID() int64                  { return w.object().ID() }
func (w Way) Deleted() bool              { return w.object().Deleted() }
func (w Way) Version() int32             { return w.object().Version() }
func (w Way) Timestamp() model.Timestamp { return w.object().Timestamp() }
func (w Way) UID() uint32                { return w.object().UID() }
func (w Way) Changeset() uint32          { return w.object().Changeset() }
func (w Way) User() string               { return w.object().userAt(false) }

// Tags returns the way's TagList and whether it has one.
func (w Way) Tags() (TagList, bool) { return tagListOf(w.object(), false) }

// Nodes returns the way's WayNodeList and whether it has one.
func (w Way) Nodes() (WayNodeList, bool) {
	for it := range w.object().subItems(false) {
		if it.Type() == TypeWayNodeList {
			return WayNodeList{it}, true
		}
	}

	return WayNodeList{}, false
}

// WayBuilder builds a Way record. Construct with NewWayBuilder.
type WayBuilder struct {
	*builder
}

// NewWayBuilder reserves and writes a Way's fixed header and user string.
func NewWayBuilder(
	buf *Buffer,
	id int64,
	deleted bool,
	version int32,
	timestamp model.Timestamp,
	uid uint32,
	changeset uint32,
	user string,
) (*WayBuilder, error) {
	b, err := writeObjectHeader(buf, TypeWay, false, id, deleted, version, timestamp, uid, changeset, user)
	if err != nil {
		return nil, err
	}

	return &WayBuilder{b}, nil
}

// AddTagList opens a nested TagList sub-item.
func (wb *WayBuilder) AddTagList() (*TagListBuilder, error) {
	return newTagListBuilder(wb.buf, wb.builder)
}

// AddWayNodeList opens a nested WayNodeList sub-item.
func (wb *WayBuilder) AddWayNodeList() (*WayNodeListBuilder, error) {
	return newWayNodeListBuilder(wb.buf, wb.builder)
}

// Finish patches the record's size header and commits it to the Buffer.
func (wb *WayBuilder) Finish() error { return wb.finish() }

// Abort discards the record, rolling the Buffer back to its last commit.
func (wb *WayBuilder) Abort() { wb.abort() }
