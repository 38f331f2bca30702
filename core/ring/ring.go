// File: core/ring/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free MPSC bucket ring. Head words pack a 32-bit wrap epoch over a
// 32-bit bucket index; the index value equal to the capacity is a lazy
// epoch-advance sentinel, resolved inside Reserve and Decommit instead of
// being normalized eagerly in shared storage.

package ring

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-ring/api"
)

// Compile-time interface compliance.
var _ api.BucketRing = (*Ring)(nil)

// bucket is one fixed-capacity slot. The ready flag is the only atomic
// field: size and payload are plain because their visibility is governed
// entirely by the Commit/Peek flag publication. Padding keeps neighbour
// buckets off the same cache line under producer contention.
type bucket struct {
	ready atomic.Bool
	size  uint32
	data  []byte
	_     cpu.CacheLinePad
}

// Ring is a bounded MPSC ring buffer of payload buckets.
type Ring struct {
	_         cpu.CacheLinePad
	readHead  atomic.Uint64 // advanced by the single consumer
	_         cpu.CacheLinePad
	writeHead atomic.Uint64 // advanced by producers via CAS
	_         cpu.CacheLinePad

	capacity   uint32
	bucketSize uint32
	buckets    []bucket
	backing    []byte // one allocation backing every bucket payload
}

// New allocates a ring with the given bucket count and per-bucket payload
// capacity. The capacity value itself is reserved as the index sentinel,
// so it must leave headroom below 2^32; bucket indices run [0, capacity-1].
func New(capacity, bucketSize uint32) *Ring {
	if capacity == 0 || capacity >= 1<<31 {
		panic(fmt.Sprintf("ring: capacity %d out of range [1, 2^31)", capacity))
	}
	if bucketSize == 0 {
		panic("ring: bucket size must be > 0")
	}

	r := &Ring{
		capacity:   capacity,
		bucketSize: bucketSize,
		buckets:    make([]bucket, capacity),
		backing:    make([]byte, int(capacity)*int(bucketSize)),
	}
	for i := range r.buckets {
		lo := i * int(bucketSize)
		hi := lo + int(bucketSize)
		r.buckets[i].data = r.backing[lo:hi:hi]
	}
	return r
}

// Reserve claims one bucket for writing at most size payload bytes and
// returns a reservation bound to it. Returns false when the ring is full;
// nothing is claimed and the caller decides its own backoff.
//
// Lock-free: some producer always makes progress, though one producer may
// retry while others win the CAS. Panics if size exceeds the per-bucket
// capacity; an unchecked oversized write would silently corrupt the
// neighbouring bucket.
func (r *Ring) Reserve(size uint32) (api.Reservation, bool) {
	if size > r.bucketSize {
		panic(fmt.Sprintf("ring: reserve size %d exceeds bucket capacity %d", size, r.bucketSize))
	}

	cur := r.writeHead.Load()
	for {
		next := cur

		// Fresh read-head load every iteration: a producer may claim a
		// bucket only after observing the consumer's latest Decommit.
		read := r.readHead.Load()

		free := uint32(cur & api.IndexMask)
		if free == r.capacity {
			// Resolve the lazy sentinel: next logical slot is 0 in the
			// following epoch.
			next = (cur & api.EpochMask) + api.EpochIncr
			free = 0
		}

		// Full: candidate head one epoch ahead of the read head at the
		// same index means the consumer has not released this bucket.
		if (next&api.EpochMask)-(read&api.EpochMask) == api.EpochIncr &&
			uint32(read&api.IndexMask) == free {
			return api.Reservation{}, false
		}

		next++
		if r.writeHead.CompareAndSwap(cur, next) {
			b := &r.buckets[free]
			b.size = size
			return api.Reservation{Index: free, Data: b.data[:size]}, true
		}
		cur = r.writeHead.Load()
	}
}

// Commit publishes a reservation obtained from Reserve. The flag store
// publishes every plain write made to the bucket since the reservation.
// Exactly once per reservation; committing a reservation twice or one not
// produced by Reserve corrupts the bucket lifecycle.
func (r *Ring) Commit(res api.Reservation) {
	if res.Data == nil {
		panic("ring: commit of empty reservation")
	}
	r.buckets[res.Index].ready.Store(true)
}

// Peek returns the committed payload at the cursor position, or false
// when nothing has been committed there yet. Emptiness is detected purely
// from the bucket's ready flag; the shared heads are not consulted. The
// returned view belongs to the ring and is stable until the matching
// Decommit.
//
// Single consumer only.
func (r *Ring) Peek(cur api.Cursor) ([]byte, bool) {
	b := &r.buckets[uint32(uint64(cur)&api.IndexMask)]
	if !b.ready.Load() {
		return nil, false
	}
	return b.data[:b.size], true
}

// Decommit releases the bucket just returned by Peek and returns the
// advanced cursor, which the caller must thread into the next Peek. The
// read-head store publishes both the freed capacity and the flag reset to
// any producer that subsequently loads the read head in Reserve.
//
// Single consumer only.
func (r *Ring) Decommit(cur api.Cursor) api.Cursor {
	idx := uint32(uint64(cur) & api.IndexMask)

	next := cur + 1
	if idx+1 == r.capacity {
		// Consumer-side mirror of the producer's sentinel rule.
		next = api.Cursor((uint64(cur) & api.EpochMask) + api.EpochIncr)
	}

	// Only the consumer itself re-reads this flag before a producer's
	// next Commit republishes the bucket; the read-head store below is
	// what publishes the reset to producers.
	r.buckets[idx].ready.Store(false)
	r.readHead.Store(uint64(next))
	return next
}

// Cap returns the number of buckets.
func (r *Ring) Cap() int {
	return int(r.capacity)
}

// BucketSize returns the per-bucket payload capacity in bytes.
func (r *Ring) BucketSize() int {
	return int(r.bucketSize)
}
