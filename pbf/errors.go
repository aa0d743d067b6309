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

// Package pbf is the pipeline coordinator: it turns an io.Reader of OSM PBF
// bytes into an ordered sequence of arena.Buffer values, one per data Blob,
// decoded concurrently across a worker pool.
package pbf

import "fmt"

// ErrorKind classifies why a Decoder call failed. Every error this package
// returns from Open or Read is either nil or an *Error carrying one of
// these.
type ErrorKind int

const (
	// KindIO means the underlying byte stream errored, or ended mid-frame.
	KindIO ErrorKind = iota

	// KindFraming means a BlobHeader's length or type, or a Blob's
	// declared size, was invalid.
	KindFraming

	// KindProtobuf means a protobuf message failed to parse.
	KindProtobuf

	// KindUnsupportedCompression means an LZMA-compressed blob was
	// encountered.
	KindUnsupportedCompression

	// KindUnsupportedFeature means a HeaderBlock required feature was not
	// recognized.
	KindUnsupportedFeature

	// KindMalformedBlock means a PrimitiveGroup had no recognized kind,
	// its dense/parallel arrays were inconsistent, or a tag run ran off
	// the end of keys_vals mid-pair.
	KindMalformedBlock

	// KindBufferFull means an arena.Buffer with growth disabled could not
	// satisfy an append.
	KindBufferFull

	// KindUndefinedLocation means a Node's Location was asked for but
	// never set (the node was invisible, or had the sentinel location).
	KindUndefinedLocation
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io_error"
	case KindFraming:
		return "framing_error"
	case KindProtobuf:
		return "protobuf_error"
	case KindUnsupportedCompression:
		return "unsupported_compression"
	case KindUnsupportedFeature:
		return "unsupported_feature"
	case KindMalformedBlock:
		return "malformed_block"
	case KindBufferFull:
		return "buffer_full"
	case KindUndefinedLocation:
		return "undefined_location"
	default:
		return "unknown_error"
	}
}

// Error wraps an underlying decode error with its taxonomy Kind. All errors
// this package surfaces at the Decoder boundary are fatal at the stream
// level: there is no retry and no skip-blob mode.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pbf: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
