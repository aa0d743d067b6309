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
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/destel/rill"

	"github.com/DavidKarlas/libosmium/arena"
	"github.com/DavidKarlas/libosmium/internal/core"
	"github.com/DavidKarlas/libosmium/internal/decoder"
	"github.com/DavidKarlas/libosmium/internal/pb"
	"github.com/DavidKarlas/libosmium/internal/workerpool"
	"github.com/DavidKarlas/libosmium/model"
)

// future is the per-Blob promise the reader goroutine enqueues: a channel
// that will carry exactly one resolved value once the worker pool finishes
// decoding that Blob.
type future = <-chan rill.Try[*arena.Buffer]

// Decoder turns a stream of OSM PBF bytes into an ordered sequence of
// arena.Buffer values, one per data Blob. One reader goroutine frames the
// stream and submits each data Blob's decode as a task to a worker pool;
// Read drains the futures in the order the Blobs were read, so the output
// sequence matches file order regardless of how workers interleave.
type Decoder struct {
	r      io.Reader
	header model.Header
	opts   decoderOptions

	out    chan future
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// err is the terminal error, if any, set by the first Read that
	// observes one. Once set, every later Read returns it again instead
	// of reading d.out, whose closed zero value would otherwise look
	// like a clean end of stream.
	err error

	closeOnce sync.Once
}

// Open reads the stream's single OSMHeader Blob synchronously, populating
// Header, then — if opts request any entity kind — starts the reader
// goroutine that will decode subsequent OSMData Blobs in the background.
func Open(r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := defaultDecoderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Decoder{r: r, opts: cfg}

	h, err := decoder.ReadBlobHeader(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			d.out = closedOut()

			return d, nil
		}

		return nil, classify(err)
	}

	if err := decoder.ExpectType(h, "OSMHeader"); err != nil {
		return nil, classify(err)
	}

	blob, err := decoder.ReadBlob(r, h)
	if err != nil {
		return nil, classify(err)
	}

	// ReadBlob's Blob aliases a pooled buffer already returned to the pool,
	// and the scratch buffer below may be that same buffer; clone so that
	// decompressing into scratch cannot overwrite the compressed input.
	blob = cloneBlob(blob)

	scratch := core.NewPooledBuffer()
	defer scratch.Close()

	raw, err := decoder.Unpack(scratch, blob)
	if err != nil {
		return nil, classify(err)
	}

	hdr, err := decoder.DecodeHeader(raw)
	if err != nil {
		return nil, classify(err)
	}

	d.header = hdr

	if !cfg.entities.Nodes && !cfg.entities.Ways && !cfg.entities.Relations {
		d.out = closedOut()

		return d, nil
	}

	if d.opts.pool == nil {
		d.opts.pool = workerpool.Default
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.out = make(chan future, cfg.maxBufferQueue)

	d.wg.Add(1)

	go d.run(ctx)

	return d, nil
}

func closedOut() chan future {
	ch := make(chan future)
	close(ch)

	return ch
}

// Header returns the metadata decoded from the stream's OSMHeader Blob.
func (d *Decoder) Header() model.Header { return d.header }

// Read blocks on the next decoded Blob, returning its Buffer in file order.
// It returns an empty Buffer with a nil error at end of stream. Once any
// call returns a non-nil error the stream is done and every subsequent Read
// returns the same error. After a framing or read error the reader goroutine
// has already exited; after a decode error it may still be reading ahead
// until Close stops it.
func (d *Decoder) Read() (*arena.Buffer, error) {
	if d.err != nil {
		return nil, d.err
	}

	fut, ok := <-d.out
	if !ok {
		return arena.NewBuffer(0, arena.GrowFixed), nil
	}

	try := <-fut
	if try.Error != nil {
		d.err = try.Error

		return nil, d.err
	}

	return try.Value, nil
}

// Close signals the reader goroutine to stop at its next back-pressure
// check or blob boundary, and waits for it to exit. In-flight decode tasks
// already submitted to the worker pool run to completion; their results are
// discarded.
func (d *Decoder) Close() error {
	d.closeOnce.Do(func() {
		if d.cancel != nil {
			d.cancel()
		}
	})

	d.wg.Wait()

	return nil
}

// run is the reader goroutine: it frames one OSMData Blob at a time,
// submits its decode to the worker pool, and pushes the resulting future
// onto the output queue in read order. The blocking send on d.out is the
// buffer-queue back-pressure; the explicit poll below is the work-queue
// back-pressure, both escapable via ctx so Close returns promptly.
func (d *Decoder) run(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.out)

	for {
		h, err := decoder.ReadBlobHeader(d.r)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				d.pushErr(ctx, err)
			}

			return
		}

		if err := decoder.ExpectType(h, "OSMData"); err != nil {
			d.pushErr(ctx, err)

			return
		}

		blob, err := decoder.ReadBlob(d.r, h)
		if err != nil {
			d.pushErr(ctx, err)

			return
		}

		// ReadBlob's Blob aliases a pooled scratch buffer already
		// returned to the pool; clone before handing it to a worker
		// that may run long after this loop moves on.
		blob = cloneBlob(blob)
		mask := d.opts.entities

		for d.opts.pool.QueueLen() > d.opts.maxWorkQueue {
			select {
			case <-ctx.Done():
				return
			case <-time.After(10 * time.Millisecond):
			}
		}

		resultCh := d.opts.pool.Submit(func() (any, error) {
			scratch := core.NewPooledBuffer()
			defer scratch.Close()

			raw, err := decoder.Unpack(scratch, blob)
			if err != nil {
				return nil, err
			}

			return decoder.DecodePrimitiveBlock(raw, mask)
		})

		select {
		case d.out <- resolve(resultCh):
		case <-ctx.Done():
			return
		}
	}
}

// resolve wraps a workerpool.Result channel as a rill.Try future, so the
// output queue's element type matches the teacher's own envelope for
// concurrent decode results.
func resolve(resultCh <-chan workerpool.Result) future {
	out := make(chan rill.Try[*arena.Buffer], 1)

	go func() {
		defer close(out)

		res := <-resultCh
		if res.Err != nil {
			out <- rill.Try[*arena.Buffer]{Error: classify(res.Err)}

			return
		}

		out <- rill.Try[*arena.Buffer]{Value: res.Value.(*arena.Buffer)}
	}()

	return out
}

// pushErr enqueues a single already-resolved failed future, matching
// spec's "surfaces the error into the next future it enqueues" shutdown
// behavior, then the caller returns and the reader goroutine exits.
func (d *Decoder) pushErr(ctx context.Context, err error) {
	out := make(chan rill.Try[*arena.Buffer], 1)
	out <- rill.Try[*arena.Buffer]{Error: classify(err)}
	close(out)

	select {
	case d.out <- out:
	case <-ctx.Done():
	}
}

func cloneBlob(b *pb.Blob) *pb.Blob {
	clone := &pb.Blob{RawSize: b.RawSize}

	switch {
	case b.Raw != nil:
		clone.Raw = append([]byte(nil), b.Raw...)
	case b.ZlibData != nil:
		clone.ZlibData = append([]byte(nil), b.ZlibData...)
	case b.LzmaData != nil:
		clone.LzmaData = append([]byte(nil), b.LzmaData...)
	case b.Lz4Data != nil:
		clone.Lz4Data = append([]byte(nil), b.Lz4Data...)
	case b.ZstdData != nil:
		clone.ZstdData = append([]byte(nil), b.ZstdData...)
	}

	return clone
}
