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

// Package pb holds the OSM PBF wire messages (BlobHeader, Blob, HeaderBlock,
// PrimitiveBlock, and friends) and their decoders. The real OSM PBF schema is
// proto2, and a generated Go package for it would normally come out of
// protoc-gen-go; this package plays that role by hand, reading fields
// directly off the wire with google.golang.org/protobuf/encoding/protowire.
// Field numbers below match the public osmformat.proto/fileformat.proto
// schema exactly, so this package can read any real-world .osm.pbf file.
package pb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrTruncated means the wire bytes ended in the middle of a field.
var ErrTruncated = errors.New("pb: truncated message")

// consumeTag reads one (field number, wire type) pair and returns the
// remaining bytes.
func consumeTag(b []byte) (protowire.Number, protowire.Type, []byte, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return 0, 0, nil, fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
	}

	return num, typ, b[n:], nil
}

func consumeVarint(b []byte) (uint64, []byte, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, nil, fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
	}

	return v, b[n:], nil
}

func consumeBytes(b []byte) ([]byte, []byte, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
	}

	return v, b[n:], nil
}

// skipField discards a field's payload given its wire type, used for unknown
// fields.
func skipField(typ protowire.Type, b []byte) ([]byte, error) {
	n := protowire.ConsumeFieldValue(0, typ, b)
	if n < 0 {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
	}

	return b[n:], nil
}

// packedVarint decodes a length-delimited field holding zero or more
// varint-encoded values back to back, as used for OSM PBF's packed repeated
// numeric fields (id, keys, vals, refs, memids, and so on).
func packedVarint(b []byte) ([]uint64, error) {
	var out []uint64

	for len(b) > 0 {
		v, rest, err := consumeVarint(b)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
		b = rest
	}

	return out, nil
}

func packedInt32(b []byte) ([]int32, error) {
	raw, err := packedVarint(b)
	if err != nil {
		return nil, err
	}

	out := make([]int32, len(raw))
	for i, v := range raw {
		out[i] = int32(v)
	}

	return out, nil
}

func packedUint32(b []byte) ([]uint32, error) {
	raw, err := packedVarint(b)
	if err != nil {
		return nil, err
	}

	out := make([]uint32, len(raw))
	for i, v := range raw {
		out[i] = uint32(v)
	}

	return out, nil
}

func packedSint64(b []byte) ([]int64, error) {
	raw, err := packedVarint(b)
	if err != nil {
		return nil, err
	}

	out := make([]int64, len(raw))
	for i, v := range raw {
		out[i] = protowire.DecodeZigZag(v)
	}

	return out, nil
}

func packedSint32(b []byte) ([]int32, error) {
	raw, err := packedSint64(b)
	if err != nil {
		return nil, err
	}

	out := make([]int32, len(raw))
	for i, v := range raw {
		out[i] = int32(v)
	}

	return out, nil
}

func packedBool(b []byte) ([]bool, error) {
	raw, err := packedVarint(b)
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(raw))
	for i, v := range raw {
		out[i] = v != 0
	}

	return out, nil
}
