// Package api
// Author: momentics <momentics@gmail.com>
//
// Bucket ring buffer contract: many producers, exactly one consumer.

package api

// Packed head/cursor layout. The high 32 bits count how many times the
// index has wrapped through the capacity (the epoch), the low 32 bits
// hold the bucket index. An index equal to the capacity is a sentinel:
// the next logical slot is 0 but the epoch bump has not happened yet.
const (
	EpochIncr uint64 = 1 << 32
	EpochMask uint64 = 0xFFFFFFFF00000000
	IndexMask uint64 = 0x00000000FFFFFFFF
)

// Cursor is the consumer's private read position: a packed (epoch, index)
// value of the same shape as the shared heads, but never stored in shared
// memory. The zero value is the correct starting position. The consumer
// must thread the cursor returned by Decommit into the next Peek.
type Cursor uint64

// Epoch returns the wrap count part of the cursor.
func (c Cursor) Epoch() uint32 {
	return uint32(uint64(c) >> 32)
}

// Index returns the bucket index part of the cursor.
func (c Cursor) Index() uint32 {
	return uint32(uint64(c) & IndexMask)
}

// Reservation is a claim on one bucket, produced by Reserve and consumed
// exactly once by Commit. Treat it as opaque: the fields are populated by
// the ring and must not be modified by callers.
type Reservation struct {
	// Index of the claimed bucket.
	Index uint32
	// Data is the writable payload region, len equal to the reserved size.
	// Valid only between Reserve and Commit.
	Data []byte
}

// BucketRing is a bounded MPSC ring of fixed-size payload buckets.
//
// Any number of goroutines may call Reserve and Commit concurrently.
// Exactly one goroutine may call Peek and Decommit for the lifetime of
// the ring; the cursor it threads through those calls is unsynchronized
// state and has no protection against concurrent use.
type BucketRing interface {
	// Reserve claims one bucket for writing at most size payload bytes.
	// Returns false if the ring is full; no slot is claimed in that case.
	Reserve(size uint32) (Reservation, bool)

	// Commit publishes a reservation's payload to the consumer.
	// Exactly once per reservation.
	Commit(res Reservation)

	// Peek returns the payload at the cursor position, or false when no
	// committed bucket is available there yet. The returned view belongs
	// to the ring and is stable only until the matching Decommit.
	Peek(cur Cursor) ([]byte, bool)

	// Decommit releases the bucket at the cursor position back to the
	// producers and returns the advanced cursor the caller must use for
	// the next Peek.
	Decommit(cur Cursor) Cursor

	// Cap returns the number of buckets.
	Cap() int

	// BucketSize returns the per-bucket payload capacity in bytes.
	BucketSize() int
}
