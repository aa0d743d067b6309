package decoder_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/DavidKarlas/libosmium/internal/decoder"
	"github.com/DavidKarlas/libosmium/internal/pb"
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

// frame prepends the 4-byte big-endian length prefix that precedes every
// BlobHeader on the wire.
func frame(body []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(body)))
	buf.Write(body)

	return buf.Bytes()
}

func TestReadBlobHeaderRoundTrip(t *testing.T) {
	var body []byte
	body = stringField(body, 1, "OSMData")
	body = varintField(body, 3, 17)

	r := bytes.NewReader(frame(body))

	h, err := decoder.ReadBlobHeader(r)
	require.NoError(t, err)
	assert.Equal(t, "OSMData", h.Type)
	assert.Equal(t, int32(17), h.Datasize)
}

func TestReadBlobHeaderEOFAtStreamEnd(t *testing.T) {
	_, err := decoder.ReadBlobHeader(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadBlobHeaderTooLarge(t *testing.T) {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(decoder.MaxBlobHeaderSize+1))

	_, err := decoder.ReadBlobHeader(&buf)
	assert.ErrorIs(t, err, decoder.ErrBlobHeaderTooLarge)
}

func TestReadBlobAndExpectType(t *testing.T) {
	var blobBody []byte
	blobBody = bytesField(blobBody, 1, []byte("payload"))

	h := &pb.BlobHeader{Type: "OSMData", Datasize: int32(len(blobBody))}

	blob, err := decoder.ReadBlob(bytes.NewReader(blobBody), h)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), blob.Raw)

	require.NoError(t, decoder.ExpectType(h, "OSMData"))
	assert.ErrorIs(t, decoder.ExpectType(h, "OSMHeader"), decoder.ErrUnexpectedBlobType)
}

func TestReadBlobTooLarge(t *testing.T) {
	h := &pb.BlobHeader{Type: "OSMData", Datasize: decoder.MaxUncompressedBlobSize + 1}
	_, err := decoder.ReadBlob(bytes.NewReader(nil), h)
	assert.ErrorIs(t, err, decoder.ErrBlobTooLarge)
}
