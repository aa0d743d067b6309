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

// Package decoder implements the OSM PBF framing and content parsers: blob
// header/blob framing, decompression, HeaderBlock decoding, and
// PrimitiveBlock decoding into an arena.Buffer. The root pbf package wires
// these together into the concurrent pipeline.
package decoder

import "errors"

var (
	// ErrBlobHeaderTooLarge means a BlobHeader's declared length exceeded
	// MaxBlobHeaderSize.
	ErrBlobHeaderTooLarge = errors.New("decoder: blob header exceeds max size")

	// ErrBlobTooLarge means a Blob's declared raw_size exceeded
	// MaxUncompressedBlobSize.
	ErrBlobTooLarge = errors.New("decoder: blob raw size exceeds max size")

	// ErrUnexpectedBlobType means a BlobHeader.Type did not match what the
	// reader expected at that point in the stream ("OSMHeader" first,
	// "OSMData" thereafter).
	ErrUnexpectedBlobType = errors.New("decoder: unexpected blob type")

	// ErrEmptyBlob means a Blob had none of raw/zlib_data/lzma_data/
	// lz4_data/zstd_data set.
	ErrEmptyBlob = errors.New("decoder: empty blob")

	// ErrUnsupportedCompression means a Blob was LZMA-compressed, which
	// this decoder deliberately refuses to decode.
	ErrUnsupportedCompression = errors.New("decoder: unsupported compression")

	// ErrRawSizeMismatch means a decompressed blob's length did not match
	// its declared raw_size.
	ErrRawSizeMismatch = errors.New("decoder: decompressed size does not match raw_size")

	// ErrUnsupportedFeature means a HeaderBlock required feature was not
	// one of the features this decoder understands.
	ErrUnsupportedFeature = errors.New("decoder: unsupported required feature")

	// ErrMalformedBlock means a PrimitiveGroup had none, or more than one,
	// of its four entity-kind fields populated, or its dense/parallel
	// arrays were inconsistent in length.
	ErrMalformedBlock = errors.New("decoder: malformed primitive block")
)
