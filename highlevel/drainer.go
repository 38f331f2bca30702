// File: highlevel/drainer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-consumer drain loop over the raw peek/decommit pair. Payloads
// are copied into pooled buffers and staged on an unsynchronized FIFO, so
// buckets are released back to producers before the caller processes the
// data. The FIFO needs no locking precisely because of the ring's hard
// single-consumer contract.

package highlevel

import (
	"context"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/backoff"
	"github.com/momentics/hioload-ring/pool"
)

// DrainerStats is a snapshot of drain accounting.
type DrainerStats struct {
	Drained    uint64
	EmptyPolls uint64
}

// DrainerConfig holds drain loop tuning.
type DrainerConfig struct {
	// BatchSize caps payload copies per Drain pass. Zero means 64.
	BatchSize int
	// Backoff is the wait strategy applied by Run when the ring is empty.
	// Nil means yielding to the scheduler.
	Backoff api.Backoff
}

// Drainer owns the consumer side of one ring: the private cursor, a
// payload copy pool and the staging FIFO. All methods except Stats and
// Cursor must be called from the single consumer goroutine.
type Drainer struct {
	ring    api.BucketRing
	cur     api.Cursor
	curSnap atomic.Uint64 // cursor snapshot for cross-goroutine probes

	pending *queue.Queue
	bufs    *pool.BytePool

	batch int
	bo    api.Backoff

	drained    atomic.Uint64
	emptyPolls atomic.Uint64
}

// NewDrainer builds the consumer for ring. The caller must guarantee no
// other goroutine ever peeks or decommits this ring.
func NewDrainer(ring api.BucketRing, cfg DrainerConfig) *Drainer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 64
	}
	if cfg.Backoff == nil {
		cfg.Backoff = backoff.Yield{}
	}
	return &Drainer{
		ring:    ring,
		pending: queue.New(),
		bufs:    pool.NewBytePool(ring.BucketSize()),
		batch:   cfg.BatchSize,
		bo:      cfg.Backoff,
	}
}

// Drain copies up to max committed payloads off the ring into the staging
// FIFO, decommitting each bucket as soon as its copy is taken. Returns the
// number of payloads staged.
func (d *Drainer) Drain(max int) int {
	n := 0
	for n < max {
		view, ok := d.ring.Peek(d.cur)
		if !ok {
			d.emptyPolls.Add(1)
			break
		}
		buf := d.bufs.Get()
		buf = append(buf, view...)
		d.pending.Add(buf)

		d.cur = d.ring.Decommit(d.cur)
		d.drained.Add(1)
		n++
	}
	d.curSnap.Store(uint64(d.cur))
	return n
}

// Next pops the oldest staged payload. The buffer belongs to the caller
// until handed back via Recycle.
func (d *Drainer) Next() ([]byte, bool) {
	if d.pending.Length() == 0 {
		return nil, false
	}
	return d.pending.Remove().([]byte), true
}

// Recycle returns a buffer obtained from Next to the copy pool.
func (d *Drainer) Recycle(buf []byte) {
	d.bufs.Put(buf)
}

// Run drains continuously and feeds every payload to handler, recycling
// buffers after each call. Blocks until ctx ends. The handler must not
// retain its argument.
func (d *Drainer) Run(ctx context.Context, handler func([]byte)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.Drain(d.batch) == 0 {
			d.bo.Wait()
			continue
		}
		d.bo.Reset()

		for {
			buf, ok := d.Next()
			if !ok {
				break
			}
			handler(buf)
			d.Recycle(buf)
		}
	}
}

// Cursor returns the consumer position as of the last completed Drain.
// Safe to call from any goroutine, e.g. as a debug probe.
func (d *Drainer) Cursor() api.Cursor {
	return api.Cursor(d.curSnap.Load())
}

// Stats returns a snapshot of the drain counters. Safe to call from any
// goroutine.
func (d *Drainer) Stats() DrainerStats {
	return DrainerStats{
		Drained:    d.drained.Load(),
		EmptyPolls: d.emptyPolls.Load(),
	}
}
