// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
//
// Reusable fixed-capacity byte buffers for payload copies taken off the
// ring by the drainer. Backed by sync.Pool so idle buffers are reclaimed
// under memory pressure.

package pool

import "sync"

// BytePool hands out byte slices with a fixed capacity and zero length.
type BytePool struct {
	size int
	pool sync.Pool
}

// NewBytePool creates a pool of buffers with the given capacity, normally
// the ring's per-bucket payload capacity.
func NewBytePool(size int) *BytePool {
	bp := &BytePool{size: size}
	bp.pool.New = func() any {
		return make([]byte, 0, size)
	}
	return bp
}

// Get returns a zero-length buffer with at least the pool's capacity.
func (bp *BytePool) Get() []byte {
	return bp.pool.Get().([]byte)[:0]
}

// Put returns a buffer to the pool. Undersized buffers (not obtained from
// this pool) are dropped rather than recycled.
func (bp *BytePool) Put(buf []byte) {
	if cap(buf) < bp.size {
		return
	}
	bp.pool.Put(buf[:0])
}

// BufSize returns the capacity of buffers this pool hands out.
func (bp *BytePool) BufSize() int {
	return bp.size
}
