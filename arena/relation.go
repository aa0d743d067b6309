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

// Relation documents a relationship between two or more other entities. It
// is a read-only view onto an Item of TypeRelation.
type Relation struct {
	Item
}

func (r Relation) object() object { return object{r.Item} }

func (r Relation) ID() int64                  { return r.object().ID() }
func (r Relation) Deleted() bool              { return r.object().Deleted() }
func (r Relation) Version() int32             { return r.object().Version() }
func (r Relation) Timestamp() model.Timestamp { return r.object().Timestamp() }
func (r Relation) UID() uint32                { return r.object().UID() }
func (r Relation) Changeset() uint32          { return r.object().Changeset() }
func (r Relation) User() string               { return r.object().userAt(false) }

// Tags returns the relation's TagList and whether it has one.
func (r Relation) Tags() (TagList, bool) { return tagListOf(r.object(), false) }

// Members returns the relation's RelationMemberList and whether it has one.
func (r Relation) Members() (RelationMemberList, bool) {
	for it := range r.object().subItems(false) {
		if it.Type() == TypeRelationMemberList {
			return RelationMemberList{it}, true
		}
	}

	return RelationMemberList{}, false
}

// RelationBuilder builds a Relation record. Construct with
// NewRelationBuilder.
type RelationBuilder struct {
	*builder
}

// NewRelationBuilder reserves and writes a Relation's fixed header and user
// string.
func NewRelationBuilder(
	buf *Buffer,
	id int64,
	deleted bool,
	version int32,
	timestamp model.Timestamp,
	uid uint32,
	changeset uint32,
	user string,
) (*RelationBuilder, error) {
	b, err := writeObjectHeader(buf, TypeRelation, false, id, deleted, version, timestamp, uid, changeset, user)
	if err != nil {
		return nil, err
	}

	return &RelationBuilder{b}, nil
}

// AddTagList opens a nested TagList sub-item.
func (rb *RelationBuilder) AddTagList() (*TagListBuilder, error) {
	return newTagListBuilder(rb.buf, rb.builder)
}

// AddRelationMemberList opens a nested RelationMemberList sub-item.
func (rb *RelationBuilder) AddRelationMemberList() (*RelationMemberListBuilder, error) {
	return newRelationMemberListBuilder(rb.buf, rb.builder)
}

// Finish patches the record's size header and commits it to the Buffer.
func (rb *RelationBuilder) Finish() error { return rb.finish() }

// Abort discards the record, rolling the Buffer back to its last commit.
func (rb *RelationBuilder) Abort() { rb.abort() }
