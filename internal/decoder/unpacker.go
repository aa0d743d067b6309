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
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"

	"github.com/DavidKarlas/libosmium/internal/core"
	"github.com/DavidKarlas/libosmium/internal/pb"
)

// Unpack returns the decompressed payload of blob, using buf as scratch
// space so repeated calls from the same goroutine reuse one allocation.
// This method is not "buried" inside blob reading so that decompression of
// independent blobs can run concurrently across worker goroutines.
func Unpack(buf *core.PooledBuffer, blob *pb.Blob) ([]byte, error) {
	if blob.Raw != nil {
		return blob.Raw, nil
	}

	var factory func() (io.Reader, error)

	switch {
	case blob.ZlibData != nil:
		factory = func() (io.Reader, error) {
			return zlib.NewReader(bytes.NewReader(blob.ZlibData))
		}

	case blob.LzmaData != nil:
		return nil, ErrUnsupportedCompression

	case blob.Lz4Data != nil:
		factory = func() (io.Reader, error) {
			return lz4.NewReader(bytes.NewReader(blob.Lz4Data)), nil
		}

	case blob.ZstdData != nil:
		factory = func() (io.Reader, error) {
			return zstd.NewReader(bytes.NewReader(blob.ZstdData))
		}

	default:
		return nil, ErrEmptyBlob
	}

	rawBufferSize := int(blob.RawSize) + bytes.MinRead
	if rawBufferSize > buf.Cap() {
		buf.Grow(rawBufferSize)
	}

	rdr, err := factory()
	if err != nil {
		return nil, fmt.Errorf("unpacker factory: %w", err)
	}

	n, err := buf.ReadFrom(rdr)
	if err != nil {
		return nil, fmt.Errorf("unpacker read: %w", err)
	}

	if n != int64(blob.RawSize) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrRawSizeMismatch, n, blob.RawSize)
	}

	return buf.Bytes(), nil
}
