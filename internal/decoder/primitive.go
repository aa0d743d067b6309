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

package decoder

import (
	"fmt"

	"github.com/DavidKarlas/libosmium/arena"
	"github.com/DavidKarlas/libosmium/internal/pb"
	"github.com/DavidKarlas/libosmium/model"
)

// EntityMask selects which entity kinds DecodePrimitiveBlock should
// materialize into the output Buffer; unrequested kinds are parsed (for
// stream position) but never built.
type EntityMask struct {
	Nodes     bool
	Ways      bool
	Relations bool
}

// AllEntities is an EntityMask requesting every kind.
var AllEntities = EntityMask{Nodes: true, Ways: true, Relations: true}

// DecodePrimitiveBlock parses a decompressed PrimitiveBlock payload into a
// freshly allocated Buffer holding every requested object, in block order.
func DecodePrimitiveBlock(raw []byte, mask EntityMask) (*arena.Buffer, error) {
	blk, err := pb.UnmarshalPrimitiveBlock(raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling primitive block: %w", err)
	}

	st := blk.Stringtable
	granularity := blk.GetGranularity()
	lonOffset := blk.GetLonOffset()
	latOffset := blk.GetLatOffset()
	dateGranularity := blk.GetDateGranularity()

	buf := arena.NewBuffer(len(raw)*2, arena.GrowExpand)

	for _, g := range blk.Primitivegroup {
		kinds := 0
		if g.Dense != nil {
			kinds++
		}

		if len(g.Nodes) > 0 {
			kinds++
		}

		if len(g.Ways) > 0 {
			kinds++
		}

		if len(g.Relations) > 0 {
			kinds++
		}

		if kinds != 1 {
			return nil, fmt.Errorf("%w: group has %d populated kinds", ErrMalformedBlock, kinds)
		}

		switch {
		case g.Dense != nil:
			if !mask.Nodes {
				continue
			}

			if err := decodeDenseNodes(buf, st, g.Dense, granularity, lonOffset, latOffset, dateGranularity); err != nil {
				return nil, err
			}

		case len(g.Nodes) > 0:
			if !mask.Nodes {
				continue
			}

			for _, n := range g.Nodes {
				if err := decodeNode(buf, st, n, granularity, lonOffset, latOffset, dateGranularity); err != nil {
					return nil, err
				}
			}

		case len(g.Ways) > 0:
			if !mask.Ways {
				continue
			}

			for _, w := range g.Ways {
				if err := decodeWay(buf, st, w, dateGranularity); err != nil {
					return nil, err
				}
			}

		case len(g.Relations) > 0:
			if !mask.Relations {
				continue
			}

			for _, r := range g.Relations {
				if err := decodeRelation(buf, st, r, dateGranularity); err != nil {
					return nil, err
				}
			}
		}
	}

	return buf, nil
}

// uidFromSigned maps a negative PBF uid (seen on some historical edits) to
// the anonymous user id 0.
func uidFromSigned(v int32) uint32 {
	if v < 0 {
		return 0
	}

	return uint32(v)
}

// tagListAdder is satisfied by arena.NodeBuilder, arena.WayBuilder, and
// arena.RelationBuilder.
type tagListAdder interface {
	AddTagList() (*arena.TagListBuilder, error)
}

func addTagList(adder tagListAdder, st *pb.StringTable, keys, vals []uint32) error {
	if len(keys) == 0 {
		return nil
	}

	tb, err := adder.AddTagList()
	if err != nil {
		return err
	}

	for i, k := range keys {
		if err := tb.AddTag(st.Get(k), st.Get(vals[i])); err != nil {
			tb.Abort()
			return err
		}
	}

	return tb.Finish()
}

func decodeNode(buf *arena.Buffer, st *pb.StringTable, n *pb.Node, granularity int32, lonOffset, latOffset int64, dateGranularity int32) error {
	visible := true

	var version int32

	var changeset, uid uint32

	var ts model.Timestamp

	var user string

	if n.Info != nil {
		info := n.Info
		if info.Version != nil {
			version = *info.Version
		}

		if info.Changeset != nil {
			changeset = uint32(*info.Changeset)
		}

		if info.Timestamp != nil {
			ts = model.TimestampFromPBF(*info.Timestamp, dateGranularity)
		}

		if info.Uid != nil {
			uid = uidFromSigned(*info.Uid)
		}

		if info.UserSid != nil {
			user = st.Get(uint32(*info.UserSid))
		}

		if info.Visible != nil {
			visible = *info.Visible
		}
	}

	nb, err := arena.NewNodeBuilder(buf, n.Id, !visible, version, ts, uid, changeset, user)
	if err != nil {
		return err
	}
	defer nb.AbortIfOpen()

	if visible {
		nb.SetLocation(model.LocationFromPBF(n.Lon, n.Lat, lonOffset, latOffset, granularity))
	}

	if err := addTagList(nb, st, n.Keys, n.Vals); err != nil {
		return err
	}

	return nb.Finish()
}

func validDenseInfo(di *pb.DenseInfo, n int) bool {
	if di == nil {
		return true
	}

	if len(di.Version) != n || len(di.Changeset) != n || len(di.Timestamp) != n ||
		len(di.Uid) != n || len(di.UserSid) != n {
		return false
	}

	return len(di.Visible) == 0 || len(di.Visible) == n
}

func decodeDenseNodes(buf *arena.Buffer, st *pb.StringTable, dn *pb.DenseNodes, granularity int32, lonOffset, latOffset int64, dateGranularity int32) error {
	n := len(dn.Id)
	if len(dn.Lat) != n || len(dn.Lon) != n {
		return fmt.Errorf("%w: dense arrays of inconsistent length", ErrMalformedBlock)
	}

	if !validDenseInfo(dn.Denseinfo, n) {
		return fmt.Errorf("%w: dense info arrays of inconsistent length", ErrMalformedBlock)
	}

	di := dn.Denseinfo
	keysVals := dn.KeysVals
	tagCursor := 0

	var id, lat, lon, uidAcc, userSidAcc, changesetAcc, timestampAcc int64

	for i := 0; i < n; i++ {
		id += dn.Id[i]
		lat += dn.Lat[i]
		lon += dn.Lon[i]

		visible := true

		var version int32

		var changeset, uid uint32

		var ts model.Timestamp

		var user string

		if di != nil {
			version = di.Version[i]
			changesetAcc += di.Changeset[i]
			timestampAcc += di.Timestamp[i]
			uidAcc += int64(di.Uid[i])
			userSidAcc += int64(di.UserSid[i])

			changeset = uint32(changesetAcc)
			ts = model.TimestampFromPBF(timestampAcc, dateGranularity)
			uid = uidFromSigned(int32(uidAcc))
			user = st.Get(uint32(userSidAcc))

			if len(di.Visible) > 0 {
				visible = di.Visible[i]
			}
		}

		nb, err := arena.NewNodeBuilder(buf, id, !visible, version, ts, uid, changeset, user)
		if err != nil {
			return err
		}

		if visible {
			nb.SetLocation(model.LocationFromPBF(lon, lat, lonOffset, latOffset, granularity))
		}

		if tagCursor < len(keysVals) && keysVals[tagCursor] != 0 {
			tb, err := nb.AddTagList()
			if err != nil {
				nb.Abort()
				return err
			}

			for tagCursor < len(keysVals) && keysVals[tagCursor] != 0 {
				if tagCursor+1 >= len(keysVals) {
					tb.Abort()
					nb.Abort()

					return fmt.Errorf("%w: tag_cursor ran off the end mid-run", ErrMalformedBlock)
				}

				k, v := keysVals[tagCursor], keysVals[tagCursor+1]
				if err := tb.AddTag(st.Get(uint32(k)), st.Get(uint32(v))); err != nil {
					tb.Abort()
					nb.Abort()

					return err
				}

				tagCursor += 2
			}

			if err := tb.Finish(); err != nil {
				nb.Abort()
				return err
			}
		}

		if tagCursor < len(keysVals) {
			tagCursor++ // skip the run terminator; tolerated if absent at block end.
		}

		if err := nb.Finish(); err != nil {
			return err
		}
	}

	return nil
}

func decodeWay(buf *arena.Buffer, st *pb.StringTable, w *pb.Way, dateGranularity int32) error {
	deleted, version, changeset, uid, ts, user := decodeInfo(w.Info, st, dateGranularity)

	wb, err := arena.NewWayBuilder(buf, w.Id, deleted, version, ts, uid, changeset, user)
	if err != nil {
		return err
	}
	defer wb.AbortIfOpen()

	if err := addTagList(wb, st, w.Keys, w.Vals); err != nil {
		return err
	}

	nl, err := wb.AddWayNodeList()
	if err != nil {
		return err
	}

	var ref int64

	for _, delta := range w.Refs {
		ref += delta

		if err := nl.AddNode(ref, model.UndefinedLocation); err != nil {
			nl.Abort()
			return err
		}
	}

	if err := nl.Finish(); err != nil {
		return err
	}

	return wb.Finish()
}

func decodeRelation(buf *arena.Buffer, st *pb.StringTable, r *pb.Relation, dateGranularity int32) error {
	deleted, version, changeset, uid, ts, user := decodeInfo(r.Info, st, dateGranularity)

	if len(r.Memids) != len(r.Types) || len(r.Memids) != len(r.RolesSid) {
		return fmt.Errorf("%w: relation member arrays of inconsistent length", ErrMalformedBlock)
	}

	rb, err := arena.NewRelationBuilder(buf, r.Id, deleted, version, ts, uid, changeset, user)
	if err != nil {
		return err
	}
	defer rb.AbortIfOpen()

	if err := addTagList(rb, st, r.Keys, r.Vals); err != nil {
		return err
	}

	ml, err := rb.AddRelationMemberList()
	if err != nil {
		return err
	}

	var memid int64

	for i, delta := range r.Memids {
		memid += delta

		role := st.Get(uint32(r.RolesSid[i]))
		if err := ml.AddMember(arena.MemberType(r.Types[i]), memid, role); err != nil {
			ml.Abort()
			return err
		}
	}

	if err := ml.Finish(); err != nil {
		return err
	}

	return rb.Finish()
}

// decodeInfo copies the version/changeset/timestamp/uid/user fields shared
// by Way and Relation, neither of which carries the node-specific
// visible-defaults-true interplay.
func decodeInfo(info *pb.Info, st *pb.StringTable, dateGranularity int32) (deleted bool, version int32, changeset, uid uint32, ts model.Timestamp, user string) {
	if info == nil {
		return false, 0, 0, 0, 0, ""
	}

	if info.Version != nil {
		version = *info.Version
	}

	if info.Changeset != nil {
		changeset = uint32(*info.Changeset)
	}

	if info.Timestamp != nil {
		ts = model.TimestampFromPBF(*info.Timestamp, dateGranularity)
	}

	if info.Uid != nil {
		uid = uidFromSigned(*info.Uid)
	}

	if info.UserSid != nil {
		user = st.Get(uint32(*info.UserSid))
	}

	if info.Visible != nil {
		deleted = !*info.Visible
	}

	return deleted, version, changeset, uid, ts, user
}
