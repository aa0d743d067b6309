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

// Changeset is a record of a single edit session. It rounds out the closed
// set of Item types; real-world PBF primitive groups never populate one
// (changesets are a separate, rarely-distributed PBF file type), so this
// type is exercised only by direct Builder use.
type Changeset struct {
	Item
}

const (
	csOffID         = 0
	csOffCreatedAt  = 8
	csOffClosedAt   = 12
	csOffNumChanges = 16
	csOffUID        = 20
	csOffOpen       = 24
	csFixedSize     = 28
)

func (c Changeset) ID() int64                  { return c.buf.getI64(c.payloadOffset() + csOffID) }
func (c Changeset) CreatedAt() model.Timestamp  { return model.Timestamp(c.buf.getU32(c.payloadOffset() + csOffCreatedAt)) }
func (c Changeset) ClosedAt() model.Timestamp   { return model.Timestamp(c.buf.getU32(c.payloadOffset() + csOffClosedAt)) }
func (c Changeset) NumChanges() uint32          { return c.buf.getU32(c.payloadOffset() + csOffNumChanges) }
func (c Changeset) UID() uint32                 { return c.buf.getU32(c.payloadOffset() + csOffUID) }
func (c Changeset) Open() bool                  { return c.buf.getU32(c.payloadOffset()+csOffOpen) != 0 }

func (c Changeset) User() string {
	off := c.payloadOffset() + csFixedSize
	n := c.buf.getU16(off)

	return string(c.buf.bytes[off+2 : off+2+uint32(n)])
}

// ChangesetBuilder builds a Changeset record. Construct with
// NewChangesetBuilder.
type ChangesetBuilder struct {
	*builder
}

// NewChangesetBuilder reserves and writes a Changeset's fixed header and
// user string.
func NewChangesetBuilder(
	buf *Buffer,
	id int64,
	createdAt model.Timestamp,
	closedAt model.Timestamp,
	open bool,
	numChanges uint32,
	uid uint32,
	user string,
) (*ChangesetBuilder, error) {
	b, err := newBuilder(buf, TypeChangeset, nil)
	if err != nil {
		return nil, err
	}

	if _, err := buf.reserve(csFixedSize); err != nil {
		b.abort()
		return nil, err
	}

	payload := b.item().payloadOffset()

	buf.putI64(payload+csOffID, id)
	buf.putU32(payload+csOffCreatedAt, uint32(createdAt))
	buf.putU32(payload+csOffClosedAt, uint32(closedAt))
	buf.putU32(payload+csOffNumChanges, numChanges)
	buf.putU32(payload+csOffUID, uid)

	var openFlag uint32
	if open {
		openFlag = 1
	}

	buf.putU32(payload+csOffOpen, openFlag)

	if err := writeString(buf, user); err != nil {
		b.abort()
		return nil, err
	}

	return &ChangesetBuilder{b}, nil
}

// Finish patches the record's size header and commits it to the Buffer.
func (cb *ChangesetBuilder) Finish() error { return cb.finish() }

// Abort discards the record, rolling the Buffer back to its last commit.
func (cb *ChangesetBuilder) Abort() { cb.abort() }
