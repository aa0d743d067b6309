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

// BlobHeader precedes every Blob in the file; it is itself prefixed on the
// wire by a big-endian uint32 length, read separately by the caller.
type BlobHeader struct {
	Type      string
	Indexdata []byte
	Datasize  int32
}

const (
	blobHeaderFieldType      = 1
	blobHeaderFieldIndexdata = 2
	blobHeaderFieldDatasize  = 3
)

// UnmarshalBlobHeader decodes a BlobHeader message.
func UnmarshalBlobHeader(b []byte) (*BlobHeader, error) {
	h := &BlobHeader{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case blobHeaderFieldType:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			h.Type = string(v)
			b = rest

		case blobHeaderFieldIndexdata:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			h.Indexdata = v
			b = rest

		case blobHeaderFieldDatasize:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			h.Datasize = int32(v)
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

// Blob is the compressed or raw payload following a BlobHeader. At most one
// of Raw/ZlibData/LzmaData/Lz4Data/ZstdData is set.
type Blob struct {
	Raw      []byte
	RawSize  int32
	ZlibData []byte
	LzmaData []byte
	Lz4Data  []byte
	ZstdData []byte
}

const (
	blobFieldRaw      = 1
	blobFieldRawSize  = 2
	blobFieldZlibData = 3
	blobFieldLzmaData = 4
	blobFieldLz4Data  = 7
	blobFieldZstdData = 8
)

// UnmarshalBlob decodes a Blob message.
func UnmarshalBlob(b []byte) (*Blob, error) {
	blob := &Blob{}

	for len(b) > 0 {
		num, typ, rest, err := consumeTag(b)
		if err != nil {
			return nil, err
		}

		b = rest

		switch num {
		case blobFieldRaw:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			blob.Raw = v
			b = rest

		case blobFieldRawSize:
			v, rest, err := consumeVarint(b)
			if err != nil {
				return nil, err
			}

			blob.RawSize = int32(v)
			b = rest

		case blobFieldZlibData:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			blob.ZlibData = v
			b = rest

		case blobFieldLzmaData:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			blob.LzmaData = v
			b = rest

		case blobFieldLz4Data:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			blob.Lz4Data = v
			b = rest

		case blobFieldZstdData:
			v, rest, err := consumeBytes(b)
			if err != nil {
				return nil, err
			}

			blob.ZstdData = v
			b = rest

		default:
			b, err = skipField(typ, b)
			if err != nil {
				return nil, err
			}
		}
	}

	return blob, nil
}
