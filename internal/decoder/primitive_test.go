package decoder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/DavidKarlas/libosmium/arena"
	"github.com/DavidKarlas/libosmium/internal/decoder"
)

func packedVarintField(b []byte, num protowire.Number, vs []uint64) []byte {
	var payload []byte
	for _, v := range vs {
		payload = protowire.AppendVarint(payload, v)
	}

	return bytesField(b, num, payload)
}

func buildStringTable(strs ...string) []byte {
	var b []byte
	for _, s := range strs {
		b = stringField(b, 1, s)
	}

	return b
}

func TestDecodePrimitiveBlockPlainNode(t *testing.T) {
	st := buildStringTable("", "highway", "residential")

	var node []byte
	node = zigzagField(node, 1, 42)
	node = packedVarintField(node, 2, []uint64{1})
	node = packedVarintField(node, 3, []uint64{2})
	node = zigzagField(node, 8, 100000000)
	node = zigzagField(node, 9, 200000000)

	var group []byte
	group = bytesField(group, 1, node)

	var blk []byte
	blk = bytesField(blk, 1, st)
	blk = bytesField(blk, 2, group)

	buf, err := decoder.DecodePrimitiveBlock(blk, decoder.AllEntities)
	require.NoError(t, err)

	var nodes []arena.Node
	for n := range buf.Nodes(false) {
		nodes = append(nodes, n)
	}

	require.Len(t, nodes, 1)
	assert.Equal(t, int64(42), nodes[0].ID())
	assert.False(t, nodes[0].Deleted())

	loc, err := nodes[0].Location()
	require.NoError(t, err)
	assert.Equal(t, int32(200000000), loc.X)
	assert.Equal(t, int32(100000000), loc.Y)

	tags, ok := nodes[0].Tags()
	require.True(t, ok)

	var got [][2]string
	for k, v := range tags.Tags() {
		got = append(got, [2]string{k, v})
	}

	assert.Equal(t, [][2]string{{"highway", "residential"}}, got)
}

func TestDecodePrimitiveBlockInvisibleNodeHasNoLocation(t *testing.T) {
	var node []byte
	node = zigzagField(node, 1, 9)
	node = bytesField(node, 4, func() []byte {
		var info []byte
		info = varintField(info, 1, 2)
		info = varintField(info, 6, 0)
		return info
	}())
	node = zigzagField(node, 8, 0)
	node = zigzagField(node, 9, 0)

	var group []byte
	group = bytesField(group, 1, node)

	var blk []byte
	blk = bytesField(blk, 2, group)

	buf, err := decoder.DecodePrimitiveBlock(blk, decoder.AllEntities)
	require.NoError(t, err)

	var n arena.Node
	for it := range buf.Nodes(false) {
		n = it
	}

	assert.True(t, n.Deleted())

	_, err = n.Location()
	assert.ErrorIs(t, err, arena.ErrUndefinedLocation)
}

func TestDecodePrimitiveBlockDenseNodesDeltaAndTags(t *testing.T) {
	st := buildStringTable("", "amenity", "cafe", "shop", "bakery")

	var dense []byte
	dense = packedVarintField(dense, 1, []uint64{
		protowire.EncodeZigZag(100), protowire.EncodeZigZag(1), protowire.EncodeZigZag(1),
	})
	dense = packedVarintField(dense, 8, []uint64{
		protowire.EncodeZigZag(500), protowire.EncodeZigZag(10), protowire.EncodeZigZag(10),
	})
	dense = packedVarintField(dense, 9, []uint64{
		protowire.EncodeZigZag(700), protowire.EncodeZigZag(10), protowire.EncodeZigZag(10),
	})
	// keysVals: node0 -> (amenity=cafe), node1 -> no tags, node2 -> (shop=bakery), no trailing terminator.
	dense = packedVarintField(dense, 10, []uint64{1, 2, 0, 0, 3, 4})

	var group []byte
	group = bytesField(group, 2, dense)

	var blk []byte
	blk = bytesField(blk, 1, st)
	blk = bytesField(blk, 2, group)

	buf, err := decoder.DecodePrimitiveBlock(blk, decoder.AllEntities)
	require.NoError(t, err)

	var ids []int64

	var tagCounts []int

	for n := range buf.Nodes(false) {
		ids = append(ids, n.ID())

		tl, ok := n.Tags()
		if ok {
			tagCounts = append(tagCounts, tl.Len())
		} else {
			tagCounts = append(tagCounts, 0)
		}
	}

	assert.Equal(t, []int64{100, 101, 102}, ids)
	assert.Equal(t, []int{1, 0, 1}, tagCounts)
}

func TestDecodePrimitiveBlockWay(t *testing.T) {
	st := buildStringTable("", "highway", "primary")

	var way []byte
	way = varintField(way, 1, 900)
	way = packedVarintField(way, 2, []uint64{1})
	way = packedVarintField(way, 3, []uint64{2})
	way = packedVarintField(way, 8, []uint64{
		protowire.EncodeZigZag(10), protowire.EncodeZigZag(5), protowire.EncodeZigZag(5),
	})

	var group []byte
	group = bytesField(group, 3, way)

	var blk []byte
	blk = bytesField(blk, 1, st)
	blk = bytesField(blk, 2, group)

	buf, err := decoder.DecodePrimitiveBlock(blk, decoder.AllEntities)
	require.NoError(t, err)

	var w arena.Way
	for it := range buf.Ways(false) {
		w = it
	}

	assert.Equal(t, int64(900), w.ID())

	nl, ok := w.Nodes()
	require.True(t, ok)

	var refs []int64
	for ref, loc := range nl.Nodes() {
		refs = append(refs, ref)
		assert.False(t, loc.Defined())
	}

	assert.Equal(t, []int64{10, 15, 20}, refs)
}

func TestDecodePrimitiveBlockRelation(t *testing.T) {
	st := buildStringTable("", "outer", "inner")

	var rel []byte
	rel = varintField(rel, 1, 42)
	rel = packedVarintField(rel, 8, []uint64{1, 2})
	rel = packedVarintField(rel, 9, []uint64{
		protowire.EncodeZigZag(10), protowire.EncodeZigZag(5),
	})
	rel = packedVarintField(rel, 10, []uint64{1, 0})

	var group []byte
	group = bytesField(group, 4, rel)

	var blk []byte
	blk = bytesField(blk, 1, st)
	blk = bytesField(blk, 2, group)

	buf, err := decoder.DecodePrimitiveBlock(blk, decoder.AllEntities)
	require.NoError(t, err)

	var r arena.Relation
	for it := range buf.Relations(false) {
		r = it
	}

	members, ok := r.Members()
	require.True(t, ok)

	var roles []string

	var types []arena.MemberType
	members.Members()(func(typ arena.MemberType, ref int64, role string) bool {
		roles = append(roles, role)
		types = append(types, typ)
		_ = ref
		return true
	})

	assert.Equal(t, []string{"outer", "inner"}, roles)
	assert.Equal(t, []arena.MemberType{arena.MemberWay, arena.MemberNode}, types)
}

func TestDecodePrimitiveBlockMalformedGroupNoKinds(t *testing.T) {
	var group []byte
	group = bytesField(group, 99, []byte{0xAA})

	var blk []byte
	blk = bytesField(blk, 2, group)

	_, err := decoder.DecodePrimitiveBlock(blk, decoder.AllEntities)
	assert.ErrorIs(t, err, decoder.ErrMalformedBlock)
}

func TestDecodePrimitiveBlockEntityMaskSkipsWays(t *testing.T) {
	var way []byte
	way = varintField(way, 1, 1)

	var group []byte
	group = bytesField(group, 3, way)

	var blk []byte
	blk = bytesField(blk, 2, group)

	buf, err := decoder.DecodePrimitiveBlock(blk, decoder.EntityMask{Nodes: true})
	require.NoError(t, err)

	count := 0
	for range buf.Ways(false) {
		count++
	}

	assert.Equal(t, 0, count)
}
