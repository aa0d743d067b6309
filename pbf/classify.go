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

package pbf

import (
	"errors"
	"io"

	"github.com/DavidKarlas/libosmium/arena"
	"github.com/DavidKarlas/libosmium/internal/decoder"
	"github.com/DavidKarlas/libosmium/internal/pb"
)

// classify maps an internal sentinel error to its taxonomy Kind and wraps
// it. A nil err classifies to nil. An err already classified (e.g. one
// round-tripped through the output queue) is returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var already *Error
	if errors.As(err, &already) {
		return already
	}

	kind := KindIO

	switch {
	case errors.Is(err, decoder.ErrBlobHeaderTooLarge),
		errors.Is(err, decoder.ErrBlobTooLarge),
		errors.Is(err, decoder.ErrUnexpectedBlobType):
		kind = KindFraming

	case errors.Is(err, pb.ErrTruncated):
		kind = KindProtobuf

	case errors.Is(err, decoder.ErrUnsupportedCompression):
		kind = KindUnsupportedCompression

	case errors.Is(err, decoder.ErrUnsupportedFeature):
		kind = KindUnsupportedFeature

	case errors.Is(err, decoder.ErrMalformedBlock),
		errors.Is(err, decoder.ErrEmptyBlob),
		errors.Is(err, decoder.ErrRawSizeMismatch):
		kind = KindMalformedBlock

	case errors.Is(err, arena.ErrBufferFull),
		errors.Is(err, arena.ErrNestedSizeOverflow):
		kind = KindBufferFull

	case errors.Is(err, arena.ErrUndefinedLocation):
		kind = KindUndefinedLocation

	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		kind = KindIO
	}

	return &Error{Kind: kind, Err: err}
}
