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

// Package arena implements the self-describing, word-aligned binary layout
// that packs a whole heterogeneous batch of OSM objects (nodes, ways,
// relations, and their tags and sub-lists) into one contiguous, allocation-
// free byte buffer that downstream code can iterate with no further
// copying.
package arena

import "errors"

var (
	// ErrBufferFull is returned by a Buffer constructed with GrowFixed
	// when an append would exceed its capacity.
	ErrBufferFull = errors.New("arena: buffer full")

	// ErrNestedSizeOverflow is returned when a Builder's cumulative size
	// would exceed the uint32 size field.
	ErrNestedSizeOverflow = errors.New("arena: nested item size overflows uint32")

	// ErrBuilderClosed is returned by Finish on a Builder that has already
	// been finished or aborted, and when opening a nested builder under
	// such a parent. The Add* methods do not check for it.
	ErrBuilderClosed = errors.New("arena: builder already closed")

	// ErrUndefinedLocation is returned when a caller asks for the
	// Location of a Node that never had one set.
	ErrUndefinedLocation = errors.New("arena: undefined location")
)
