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

package pbf_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/DavidKarlas/libosmium/pbf"
)

func tag(b []byte, num protowire.Number, typ protowire.Type) []byte {
	return protowire.AppendTag(b, num, typ)
}

func varintField(b []byte, num protowire.Number, v uint64) []byte {
	b = tag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func zigzagField(b []byte, num protowire.Number, v int64) []byte {
	return varintField(b, num, protowire.EncodeZigZag(v))
}

func bytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = tag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func stringField(b []byte, num protowire.Number, s string) []byte {
	return bytesField(b, num, []byte(s))
}

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

// frame prepends the 4-byte big-endian length prefix that precedes every
// BlobHeader on the wire.
func frame(body []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(body)))
	buf.Write(body)

	return buf.Bytes()
}

// blobHeader builds a framed BlobHeader announcing a body of the given
// type and size.
func blobHeader(typ string, size int) []byte {
	var b []byte
	b = stringField(b, 1, typ)
	b = varintField(b, 3, uint64(size))

	return frame(b)
}

// rawDataBlob frames one OSMData BlobHeader+Blob carrying body uncompressed.
func rawDataBlob(body []byte) []byte {
	var blobBody []byte
	blobBody = bytesField(blobBody, 1, body)

	var out []byte
	out = append(out, blobHeader("OSMData", len(blobBody))...)
	out = append(out, blobBody...)

	return out
}

// osmHeaderStream frames an OSMHeader BlobHeader+Blob carrying the given
// HeaderBlock body, uncompressed.
func osmHeaderStream(headerBlock []byte) []byte {
	var blobBody []byte
	blobBody = bytesField(blobBody, 1, headerBlock)

	var out []byte
	out = append(out, blobHeader("OSMHeader", len(blobBody))...)
	out = append(out, blobBody...)

	return out
}

func plainNodeBlock(st []byte, node []byte) []byte {
	var group []byte
	group = bytesField(group, 1, node)

	var blk []byte
	blk = bytesField(blk, 1, st)
	blk = bytesField(blk, 2, group)

	return blk
}

func TestOpenEmptyStream(t *testing.T) {
	d, err := pbf.Open(bytes.NewReader(nil))
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, "", d.Header().Generator)

	buf, err := d.Read()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), buf.CommittedSize())
}

func TestOpenHeaderOnlyStream(t *testing.T) {
	var hb []byte
	hb = stringField(hb, 4, "OsmSchema-V0.6")
	hb = stringField(hb, 16, "test-writer")

	var stream []byte
	stream = append(stream, osmHeaderStream(hb)...)

	d, err := pbf.Open(bytes.NewReader(stream))
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, "test-writer", d.Header().Generator)

	buf, err := d.Read()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), buf.CommittedSize())
}

func TestOpenUnsupportedRequiredFeature(t *testing.T) {
	var hb []byte
	hb = stringField(hb, 4, "OsmSchema-V0.6")
	hb = stringField(hb, 4, "Sorting")

	stream := osmHeaderStream(hb)

	_, err := pbf.Open(bytes.NewReader(stream))
	require.Error(t, err)

	var perr *pbf.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, pbf.KindUnsupportedFeature, perr.Kind)
}

func TestDecodeSingleRawNode(t *testing.T) {
	st := buildStringTable("", "alice")

	var node []byte
	node = zigzagField(node, 1, 42)
	node = bytesField(node, 4, func() []byte {
		var info []byte
		info = varintField(info, 1, 1)
		info = varintField(info, 2, 1700000)
		info = varintField(info, 5, 1)
		return info
	}())
	node = zigzagField(node, 8, 535000000)
	node = zigzagField(node, 9, -10000000)

	blk := plainNodeBlock(st, node)

	var stream []byte
	stream = append(stream, osmHeaderStream(nil)...)
	stream = append(stream, rawDataBlob(blk)...)

	d, err := pbf.Open(bytes.NewReader(stream))
	require.NoError(t, err)
	defer d.Close()

	buf, err := d.Read()
	require.NoError(t, err)

	var ids []int64
	for n := range buf.Nodes(false) {
		ids = append(ids, n.ID())

		assert.Equal(t, "alice", n.User())

		loc, err := n.Location()
		require.NoError(t, err)
		assert.Equal(t, int32(-10000000), loc.X)
		assert.Equal(t, int32(535000000), loc.Y)
	}

	assert.Equal(t, []int64{42}, ids)

	eof, err := d.Read()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), eof.CommittedSize())
}

func TestDecodeOrderingAcrossMultipleBlobs(t *testing.T) {
	var stream []byte
	stream = append(stream, osmHeaderStream(nil)...)

	for _, id := range []int64{1, 2, 3, 4, 5} {
		var node []byte
		node = zigzagField(node, 1, id)
		node = zigzagField(node, 8, 0)
		node = zigzagField(node, 9, 0)

		blk := plainNodeBlock(nil, node)
		stream = append(stream, rawDataBlob(blk)...)
	}

	d, err := pbf.Open(bytes.NewReader(stream))
	require.NoError(t, err)
	defer d.Close()

	var got []int64
	for {
		buf, err := d.Read()
		require.NoError(t, err)

		if buf.CommittedSize() == 0 {
			break
		}

		for n := range buf.Nodes(false) {
			got = append(got, n.ID())
		}
	}

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, got)
}

func TestCloseIsIdempotent(t *testing.T) {
	var stream []byte
	stream = append(stream, osmHeaderStream(nil)...)

	d, err := pbf.Open(bytes.NewReader(stream))
	require.NoError(t, err)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
}
