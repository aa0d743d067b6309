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

// Package core holds small, allocation-conscious primitives shared by the
// decode pipeline.
package core

import (
	"bytes"
	"io"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// PooledBuffer is a bytes.Buffer borrowed from a package-level sync.Pool, for
// the read-blob-header/read-blob/decompress scratch space that the reader
// goroutine and every decode worker churn through at high frequency. Close
// returns it to the pool; callers must not use it afterwards.
type PooledBuffer struct {
	buf *bytes.Buffer
}

// NewPooledBuffer borrows an empty buffer from the pool.
func NewPooledBuffer() *PooledBuffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &PooledBuffer{buf: buf}
}

// Close returns the buffer to the pool. It is not an error to skip calling
// Close, but doing so gives up the reuse.
func (p *PooledBuffer) Close() {
	if p.buf == nil {
		return
	}

	bufferPool.Put(p.buf)
	p.buf = nil
}

func (p *PooledBuffer) Reset()          { p.buf.Reset() }
func (p *PooledBuffer) Cap() int        { return p.buf.Cap() }
func (p *PooledBuffer) Len() int        { return p.buf.Len() }
func (p *PooledBuffer) Bytes() []byte   { return p.buf.Bytes() }
func (p *PooledBuffer) Grow(n int)      { p.buf.Grow(n) }

func (p *PooledBuffer) Write(b []byte) (int, error) { return p.buf.Write(b) }

func (p *PooledBuffer) ReadFrom(r io.Reader) (int64, error) { return p.buf.ReadFrom(r) }
