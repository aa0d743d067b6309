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
	"runtime"

	"github.com/DavidKarlas/libosmium/internal/decoder"
	"github.com/DavidKarlas/libosmium/internal/workerpool"
)

const (
	// DefaultMaxWorkQueue is the default soft cap on outstanding decode
	// tasks queued but not yet picked up by a worker.
	DefaultMaxWorkQueue = 10

	// DefaultMaxBufferQueue is the default soft cap on decoded Buffers
	// held in the output queue, awaiting Read.
	DefaultMaxBufferQueue = 20
)

// DefaultNCpu returns GOMAXPROCS-1, minimum 1, the default worker pool size
// when a caller doesn't inject its own.
func DefaultNCpu() int {
	if n := runtime.GOMAXPROCS(0) - 1; n > 0 {
		return n
	}

	return 1
}

// decoderOptions holds a Decoder's tunable knobs.
type decoderOptions struct {
	entities       decoder.EntityMask
	pool           *workerpool.Pool
	maxWorkQueue   int
	maxBufferQueue int
}

// DecoderOption configures how Open constructs a Decoder.
type DecoderOption func(*decoderOptions)

// WithEntities restricts decoding to the given entity kinds. Skipped kinds
// are still parsed off the wire (to keep string-table indices and delta
// accumulators consistent) but never appended to the output Buffer.
func WithEntities(mask decoder.EntityMask) DecoderOption {
	return func(o *decoderOptions) { o.entities = mask }
}

// WithPool injects a worker pool, overriding the package-level default.
// Tests use this to inject a single-worker pool for deterministic ordering,
// though ordering is guaranteed regardless since futures are queued at
// submit time, not completion time.
func WithPool(p *workerpool.Pool) DecoderOption {
	return func(o *decoderOptions) { o.pool = p }
}

// WithMaxWorkQueue sets the back-pressure threshold on the worker pool's
// input queue.
func WithMaxWorkQueue(n int) DecoderOption {
	return func(o *decoderOptions) { o.maxWorkQueue = n }
}

// WithMaxBufferQueue sets the back-pressure threshold, and the output
// channel's buffer capacity, for decoded Buffers awaiting Read.
func WithMaxBufferQueue(n int) DecoderOption {
	return func(o *decoderOptions) { o.maxBufferQueue = n }
}

// WithNCpus is shorthand for WithPool(workerpool.New(n)): it sizes a fresh
// pool dedicated to this Decoder instead of sharing the package-level
// default.
func WithNCpus(n int) DecoderOption {
	return func(o *decoderOptions) { o.pool = workerpool.New(n) }
}

var defaultDecoderConfig = decoderOptions{
	entities:       decoder.AllEntities,
	maxWorkQueue:   DefaultMaxWorkQueue,
	maxBufferQueue: DefaultMaxBufferQueue,
}
