package decoder_test

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidKarlas/libosmium/internal/core"
	"github.com/DavidKarlas/libosmium/internal/decoder"
	"github.com/DavidKarlas/libosmium/internal/pb"
)

func TestUnpackRaw(t *testing.T) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	got, err := decoder.Unpack(buf, &pb.Blob{Raw: []byte("hello")})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestUnpackZlib(t *testing.T) {
	want := []byte("the quick brown fox jumps over the lazy dog")

	var compressed bytes.Buffer

	w := zlib.NewWriter(&compressed)
	_, err := w.Write(want)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	buf := core.NewPooledBuffer()
	defer buf.Close()

	got, err := decoder.Unpack(buf, &pb.Blob{ZlibData: compressed.Bytes(), RawSize: int32(len(want))})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUnpackLz4(t *testing.T) {
	want := []byte("the quick brown fox jumps over the lazy dog")

	var compressed bytes.Buffer

	w := lz4.NewWriter(&compressed)
	_, err := w.Write(want)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	buf := core.NewPooledBuffer()
	defer buf.Close()

	got, err := decoder.Unpack(buf, &pb.Blob{Lz4Data: compressed.Bytes(), RawSize: int32(len(want))})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUnpackZstd(t *testing.T) {
	want := []byte("the quick brown fox jumps over the lazy dog")

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)

	compressed := enc.EncodeAll(want, nil)
	require.NoError(t, enc.Close())

	buf := core.NewPooledBuffer()
	defer buf.Close()

	got, err := decoder.Unpack(buf, &pb.Blob{ZstdData: compressed, RawSize: int32(len(want))})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUnpackLzmaUnsupported(t *testing.T) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	_, err := decoder.Unpack(buf, &pb.Blob{LzmaData: []byte{1, 2, 3}})
	assert.ErrorIs(t, err, decoder.ErrUnsupportedCompression)
}

func TestUnpackEmptyBlob(t *testing.T) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	_, err := decoder.Unpack(buf, &pb.Blob{})
	assert.ErrorIs(t, err, decoder.ErrEmptyBlob)
}

func TestUnpackRawSizeMismatch(t *testing.T) {
	want := []byte("short")

	var compressed bytes.Buffer

	w := zlib.NewWriter(&compressed)
	_, err := w.Write(want)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	buf := core.NewPooledBuffer()
	defer buf.Close()

	_, err = decoder.Unpack(buf, &pb.Blob{ZlibData: compressed.Bytes(), RawSize: int32(len(want) + 1)})
	assert.ErrorIs(t, err, decoder.ErrRawSizeMismatch)
}
