// File: core/ring/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package ring implements a bounded, lock-free MPSC ring of fixed-size
// payload buckets. Producers claim buckets with a CAS loop over a packed
// (epoch, index) write head; the single consumer drains sequentially
// through a private cursor and publishes reclaimed capacity through the
// read head.
//
// Safety argument. Exclusive access to a bucket's plain (non-atomic)
// size and payload fields is guaranteed by protocol, not by locking:
//
//   - Reserve's CAS over the write head hands each index to exactly one
//     producer. Between Reserve and Commit only that producer touches
//     the bucket.
//   - Commit stores the ready flag; the consumer's Peek loads it. Go's
//     sync/atomic operations are sequentially consistent, which subsumes
//     the release/acquire pairing this publication needs, so the plain
//     size and payload writes made before Commit are visible after a
//     successful Peek.
//   - Decommit clears the flag and then stores the advanced cursor into
//     the read head. Reserve loads the read head fresh on every loop
//     iteration, so a producer can claim a bucket only after observing
//     the consumer's release of it.
//   - The full check keeps the write head at most one epoch ahead of the
//     read head at equal indices, so a producer never claims a bucket
//     whose payload the consumer has yet to release.
//
// The single-consumer rule is a hard contract: the cursor threaded
// through Peek/Decommit is unsynchronized caller-held state.
//
// Known limitation: a reservation that is never committed leaves its
// bucket permanently not-ready, and the consumer stalls at that index
// once the cursor reaches it. There is no timeout or reclamation path;
// callers own the reserve-then-commit discipline.
package ring
