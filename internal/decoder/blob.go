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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/DavidKarlas/libosmium/internal/core"
	"github.com/DavidKarlas/libosmium/internal/pb"
)

// MaxBlobHeaderSize is the largest a BlobHeader's encoded length may be
// before framing fails.
const MaxBlobHeaderSize = 64 * 1024

// MaxUncompressedBlobSize is the largest a Blob's declared raw_size may be
// before framing fails.
const MaxUncompressedBlobSize = 32 * 1024 * 1024

// ReadBlobHeader reads the 4-byte big-endian length prefix and the
// BlobHeader message that follows it. io.EOF is returned verbatim when the
// stream ends cleanly before the length prefix, the signal the caller uses
// to detect a well-formed end of file.
func ReadBlobHeader(r io.Reader) (*pb.BlobHeader, error) {
	var size uint32
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return nil, err
	}

	if size > MaxBlobHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlobHeaderTooLarge, size)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	if _, err := io.CopyN(buf, r, int64(size)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}

		return nil, fmt.Errorf("reading blob header: %w", err)
	}

	h, err := pb.UnmarshalBlobHeader(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("unmarshalling blob header: %w", err)
	}

	return h, nil
}

// ReadBlob reads the Blob message that a BlobHeader announced.
func ReadBlob(r io.Reader, h *pb.BlobHeader) (*pb.Blob, error) {
	if h.Datasize < 0 || h.Datasize > MaxUncompressedBlobSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlobTooLarge, h.Datasize)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	if _, err := io.CopyN(buf, r, int64(h.Datasize)); err != nil {
		return nil, fmt.Errorf("reading blob: %w", err)
	}

	blob, err := pb.UnmarshalBlob(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("unmarshalling blob: %w", err)
	}

	if blob.RawSize > MaxUncompressedBlobSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlobTooLarge, blob.RawSize)
	}

	return blob, nil
}

// ExpectType asserts that h has the expected BlobHeader type ("OSMHeader"
// for the first blob in a stream, "OSMData" for every blob after it).
func ExpectType(h *pb.BlobHeader, want string) error {
	if h.Type != want {
		return fmt.Errorf("%w: got %q, want %q", ErrUnexpectedBlobType, h.Type, want)
	}

	return nil
}
