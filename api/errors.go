// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values shared across the hioload-ring library.

package api

import "fmt"

var (
	// ErrRingFull reports that every bucket is committed and unconsumed.
	// Normal backpressure, not a failure: retry after the consumer drains.
	ErrRingFull = fmt.Errorf("ring is full")

	// ErrPayloadTooLarge reports a payload exceeding the ring's per-bucket
	// capacity.
	ErrPayloadTooLarge = fmt.Errorf("payload exceeds bucket capacity")

	// ErrPublishTimeout reports that a blocking publish gave up before a
	// bucket became free.
	ErrPublishTimeout = fmt.Errorf("publish timeout")
)
