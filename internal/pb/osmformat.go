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

package pb

import "google.golang.org/protobuf/encoding/protowire"

// HeaderBBox is the file's declared bounding box, in nanodegrees.
type HeaderBBox struct {
	Left, Right, Top, Bottom int64
}

const (
	bboxFieldLeft   = 1
	bboxFieldRight  = 2
	bboxFieldTop    = 3
	bboxFieldBottom = 4
)

func unmarshalHeaderBBox(b []byte) (*HeaderBBox, error) {
	box := &HeaderBBox{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		v, rest, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}

		b = rest
		sv := protowire.DecodeZigZag(v)

		switch num {
		case bboxFieldLeft:
			box.Left = sv
		case bboxFieldRight:
			box.Right = sv
		case bboxFieldTop:
			box.Top = sv
		case bboxFieldBottom:
			box.Bottom = sv
		default:
			_ = typ
		}
	}

	return box, nil
}

// HeaderBlock is the first Blob of a PBF file, of type "OSMHeader".
type HeaderBlock struct {
	Bbox                              *HeaderBBox
	RequiredFeatures                  []string
	OptionalFeatures                  []string
	Writingprogram                    *string
	Source                            *string
	OsmosisReplicationTimestamp       *int64
	OsmosisReplicationSequenceNumber  *int64
	OsmosisReplicationBaseUrl         *string
}

const (
	headerFieldBbox                      = 1
	headerFieldRequiredFeatures           = 4
	headerFieldOptionalFeatures           = 5
	headerFieldWritingprogram             = 16
	headerFieldSource                     = 17
	headerFieldOsmosisReplicationTS       = 32
	headerFieldOsmosisReplicationSeq      = 33
	headerFieldOsmosisReplicationBaseURL  = 34
)

// UnmarshalHeaderBlock decodes a HeaderBlock message.
func UnmarshalHeaderBlock(b []byte) (*HeaderBlock, error) {
	h := &HeaderBlock{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case headerFieldBbox:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			box, err := unmarshalHeaderBBox(v)
			if err != nil {
				return nil, err
			}

			h.Bbox = box
			b = rest

		case headerFieldRequiredFeatures:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			h.RequiredFeatures = append(h.RequiredFeatures, string(v))
			b = rest

		case headerFieldOptionalFeatures:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			h.OptionalFeatures = append(h.OptionalFeatures, string(v))
			b = rest

		case headerFieldWritingprogram:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			s := string(v)
			h.Writingprogram = &s
			b = rest

		case headerFieldSource:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			s := string(v)
			h.Source = &s
			b = rest

		case headerFieldOsmosisReplicationTS:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			sv := int64(v)
			h.OsmosisReplicationTimestamp = &sv
			b = rest

		case headerFieldOsmosisReplicationSeq:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			sv := int64(v)
			h.OsmosisReplicationSequenceNumber = &sv
			b = rest

		case headerFieldOsmosisReplicationBaseURL:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			s := string(v)
			h.OsmosisReplicationBaseUrl = &s
			b = rest

		default:
			b, err = skipField(typ, b)
			if err != nil {
				return nil, err
			}
		}
	}

	return h, nil
}

// StringTable is the per-PrimitiveBlock table of strings referenced by
// index from every entity in the block.
type StringTable struct {
	S [][]byte
}

const stringTableFieldS = 1

func unmarshalStringTable(b []byte) (*StringTable, error) {
	st := &StringTable{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		if num != stringTableFieldS {
			b, err = skipField(typ, b)
			if err != nil {
				return nil, err
			}

			continue
		}

		v, rest, err := consumeBytes(b)
		if err != nil {
			return nil, err
		}

		st.S = append(st.S, v)
		b = rest
	}

	return st, nil
}

// Get returns the string at index i, or "" if i is out of range.
func (st *StringTable) Get(i uint32) string {
	if st == nil || int(i) >= len(st.S) {
		return ""
	}

	return string(st.S[i])
}

// Info is the optional per-entity metadata block.
type Info struct {
	Version   *int32
	Timestamp *int64
	Changeset *int64
	Uid       *int32
	UserSid   *int32
	Visible   *bool
}

const (
	infoFieldVersion   = 1
	infoFieldTimestamp = 2
	infoFieldChangeset = 3
	infoFieldUid       = 4
	infoFieldUserSid   = 5
	infoFieldVisible   = 6
)

func unmarshalInfo(b []byte) (*Info, error) {
	info := &Info{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		v, rest, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case infoFieldVersion:
			sv := int32(v)
			info.Version = &sv
		case infoFieldTimestamp:
			sv := int64(v)
			info.Timestamp = &sv
		case infoFieldChangeset:
			sv := int64(v)
			info.Changeset = &sv
		case infoFieldUid:
			sv := int32(v)
			info.Uid = &sv
		case infoFieldUserSid:
			sv := int32(v)
			info.UserSid = &sv
		case infoFieldVisible:
			bv := v != 0
			info.Visible = &bv
		default:
			_ = typ
		}
	}

	return info, nil
}

// DenseInfo is the columnar equivalent of Info for DenseNodes: every slice
// holds one delta-encoded (version and visible excepted) value per node.
type DenseInfo struct {
	Version    []int32
	Timestamp  []int64
	Changeset  []int64
	Uid        []int32
	UserSid    []int32
	Visible    []bool
}

const (
	denseInfoFieldVersion   = 1
	denseInfoFieldTimestamp = 2
	denseInfoFieldChangeset = 3
	denseInfoFieldUid       = 4
	denseInfoFieldUserSid   = 5
	denseInfoFieldVisible   = 6
)

func unmarshalDenseInfo(b []byte) (*DenseInfo, error) {
	di := &DenseInfo{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		v, rest, err := consumeBytes(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case denseInfoFieldVersion:
			di.Version, err = packedInt32(v)
		case denseInfoFieldTimestamp:
			di.Timestamp, err = packedSint64(v)
		case denseInfoFieldChangeset:
			di.Changeset, err = packedSint64(v)
		case denseInfoFieldUid:
			di.Uid, err = packedSint32(v)
		case denseInfoFieldUserSid:
			di.UserSid, err = packedSint32(v)
		case denseInfoFieldVisible:
			di.Visible, err = packedBool(v)
		default:
			_ = typ
		}

		if err != nil {
			return nil, err
		}
	}

	return di, nil
}

// Node is a single entity of type node, as stored in PrimitiveGroup.Nodes.
type Node struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  int64
	Lon  int64
}

const (
	nodeFieldID   = 1
	nodeFieldKeys = 2
	nodeFieldVals = 3
	nodeFieldInfo = 4
	nodeFieldLat  = 8
	nodeFieldLon  = 9
)

func unmarshalNode(b []byte) (*Node, error) {
	n := &Node{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case nodeFieldID:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			n.Id = protowire.DecodeZigZag(v)
			b = rest

		case nodeFieldKeys:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if n.Keys, err = packedUint32(v); err != nil {
				return nil, err
			}

			b = rest

		case nodeFieldVals:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if n.Vals, err = packedUint32(v); err != nil {
				return nil, err
			}

			b = rest

		case nodeFieldInfo:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if n.Info, err = unmarshalInfo(v); err != nil {
				return nil, err
			}

			b = rest

		case nodeFieldLat:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			n.Lat = protowire.DecodeZigZag(v)
			b = rest

		case nodeFieldLon:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			n.Lon = protowire.DecodeZigZag(v)
			b = rest

		default:
			b, err = skipField(typ, b)
			if err != nil {
				return nil, err
			}
		}
	}

	return n, nil
}

// DenseNodes is the columnar, delta-encoded representation of a run of nodes
// sharing a PrimitiveGroup.
type DenseNodes struct {
	Id        []int64
	Denseinfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

const (
	denseNodesFieldID        = 1
	denseNodesFieldDenseinfo = 5
	denseNodesFieldLat       = 8
	denseNodesFieldLon       = 9
	denseNodesFieldKeysVals  = 10
)

func unmarshalDenseNodes(b []byte) (*DenseNodes, error) {
	dn := &DenseNodes{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		v, rest, err := consumeBytes(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case denseNodesFieldID:
			dn.Id, err = packedSint64(v)
		case denseNodesFieldDenseinfo:
			dn.Denseinfo, err = unmarshalDenseInfo(v)
		case denseNodesFieldLat:
			dn.Lat, err = packedSint64(v)
		case denseNodesFieldLon:
			dn.Lon, err = packedSint64(v)
		case denseNodesFieldKeysVals:
			dn.KeysVals, err = packedInt32(v)
		default:
			_ = typ
		}

		if err != nil {
			return nil, err
		}
	}

	return dn, nil
}

// Way is a single entity of type way.
type Way struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

const (
	wayFieldID   = 1
	wayFieldKeys = 2
	wayFieldVals = 3
	wayFieldInfo = 4
	wayFieldRefs = 8
)

func unmarshalWay(b []byte) (*Way, error) {
	w := &Way{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case wayFieldID:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			w.Id = int64(v)
			b = rest

		case wayFieldKeys:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if w.Keys, err = packedUint32(v); err != nil {
				return nil, err
			}

			b = rest

		case wayFieldVals:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if w.Vals, err = packedUint32(v); err != nil {
				return nil, err
			}

			b = rest

		case wayFieldInfo:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if w.Info, err = unmarshalInfo(v); err != nil {
				return nil, err
			}

			b = rest

		case wayFieldRefs:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if w.Refs, err = packedSint64(v); err != nil {
				return nil, err
			}

			b = rest

		default:
			b, err = skipField(typ, b)
			if err != nil {
				return nil, err
			}
		}
	}

	return w, nil
}

// MemberType is the Relation.MemberType enum: the role an entity plays as a
// member of a relation.
type MemberType int32

const (
	MemberTypeNode MemberType = 0
	MemberTypeWay MemberType = 1
	MemberTypeRelation MemberType = 2
)

// Relation is a single entity of type relation.
type Relation struct {
	Id       int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64
	Types    []MemberType
}

const (
	relationFieldID       = 1
	relationFieldKeys     = 2
	relationFieldVals     = 3
	relationFieldInfo     = 4
	relationFieldRolesSid = 8
	relationFieldMemids   = 9
	relationFieldTypes    = 10
)

func unmarshalRelation(b []byte) (*Relation, error) {
	r := &Relation{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case relationFieldID:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			r.Id = int64(v)
			b = rest

		case relationFieldKeys:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if r.Keys, err = packedUint32(v); err != nil {
				return nil, err
			}

			b = rest

		case relationFieldVals:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if r.Vals, err = packedUint32(v); err != nil {
				return nil, err
			}

			b = rest

		case relationFieldInfo:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if r.Info, err = unmarshalInfo(v); err != nil {
				return nil, err
			}

			b = rest

		case relationFieldRolesSid:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if r.RolesSid, err = packedInt32(v); err != nil {
				return nil, err
			}

			b = rest

		case relationFieldMemids:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if r.Memids, err = packedSint64(v); err != nil {
				return nil, err
			}

			b = rest

		case relationFieldTypes:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			raw, err := packedInt32(v)
			if err != nil {
				return nil, err
			}

			r.Types = make([]MemberType, len(raw))
			for i, t := range raw {
				r.Types[i] = MemberType(t)
			}

			b = rest

		default:
			b, err = skipField(typ, b)
			if err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

// PrimitiveGroup contains exactly one populated kind of entity: either Dense,
// or one of Nodes/Ways/Relations.
type PrimitiveGroup struct {
	Nodes     []*Node
	Dense     *DenseNodes
	Ways      []*Way
	Relations []*Relation
}

const (
	groupFieldNodes     = 1
	groupFieldDense     = 2
	groupFieldWays      = 3
	groupFieldRelations = 4
)

func unmarshalPrimitiveGroup(b []byte) (*PrimitiveGroup, error) {
	g := &PrimitiveGroup{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		v, rest, err := consumeBytes(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case groupFieldNodes:
			n, err := unmarshalNode(v)
			if err != nil {
				return nil, err
			}

			g.Nodes = append(g.Nodes, n)

		case groupFieldDense:
			g.Dense, err = unmarshalDenseNodes(v)
			if err != nil {
				return nil, err
			}

		case groupFieldWays:
			w, err := unmarshalWay(v)
			if err != nil {
				return nil, err
			}

			g.Ways = append(g.Ways, w)

		case groupFieldRelations:
			r, err := unmarshalRelation(v)
			if err != nil {
				return nil, err
			}

			g.Relations = append(g.Relations, r)

		default:
			_ = typ
		}
	}

	return g, nil
}

// PrimitiveBlock is the body of an "OSMData" Blob: a string table shared by
// every entity in the block, plus one or more PrimitiveGroups.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     *int32
	LatOffset       *int64
	LonOffset       *int64
	DateGranularity *int32
}

const (
	blockFieldStringtable     = 1
	blockFieldPrimitivegroup  = 2
	blockFieldGranularity     = 17
	blockFieldDateGranularity = 18
	blockFieldLatOffset       = 19
	blockFieldLonOffset       = 20
)

// UnmarshalPrimitiveBlock decodes a PrimitiveBlock message.
func UnmarshalPrimitiveBlock(b []byte) (*PrimitiveBlock, error) {
	blk := &PrimitiveBlock{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case blockFieldStringtable:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			if blk.Stringtable, err = unmarshalStringTable(v); err != nil {
				return nil, err
			}

			b = rest

		case blockFieldPrimitivegroup:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			g, err := unmarshalPrimitiveGroup(v)
			if err != nil {
				return nil, err
			}

			blk.Primitivegroup = append(blk.Primitivegroup, g)
			b = rest

		case blockFieldGranularity:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			sv := int32(v)
			blk.Granularity = &sv
			b = rest

		case blockFieldDateGranularity:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			sv := int32(v)
			blk.DateGranularity = &sv
			b = rest

		case blockFieldLatOffset:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			sv := int64(v)
			blk.LatOffset = &sv
			b = rest

		case blockFieldLonOffset:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			sv := int64(v)
			blk.LonOffset = &sv
			b = rest

		default:
			b, err = skipField(typ, b)
			if err != nil {
				return nil, err
			}
		}
	}

	return blk, nil
}

// GetGranularity returns the block's coordinate granularity, defaulting to
// 100 nanodegrees per spec when unset on the wire.
func (blk *PrimitiveBlock) GetGranularity() int32 {
	if blk.Granularity == nil {
		return 100
	}

	return *blk.Granularity
}

// GetDateGranularity returns the block's timestamp granularity, defaulting
// to 1000 ms when unset on the wire.
func (blk *PrimitiveBlock) GetDateGranularity() int32 {
	if blk.DateGranularity == nil {
		return 1000
	}

	return *blk.DateGranularity
}

func (blk *PrimitiveBlock) GetLatOffset() int64 {
	if blk.LatOffset == nil {
		return 0
	}

	return *blk.LatOffset
}

func (blk *PrimitiveBlock) GetLonOffset() int64 {
	if blk.LonOffset == nil {
		return 0
	}

	return *blk.LonOffset
}
