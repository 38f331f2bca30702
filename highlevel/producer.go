// File: highlevel/producer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Publishing wrapper over the raw reserve/commit pair: size validation,
// retry with pluggable backoff, and per-producer accounting.

package highlevel

import (
	"context"
	"sync/atomic"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/backoff"
)

// ProducerStats is a snapshot of publish accounting.
type ProducerStats struct {
	Attempts  uint64
	Full      uint64
	Published uint64
}

// Producer publishes payloads into a bucket ring. Safe for concurrent use
// by any number of goroutines; blocking publishes keep their backoff state
// on the stack, never in the shared struct.
type Producer struct {
	ring api.BucketRing

	attempts  atomic.Uint64
	full      atomic.Uint64
	published atomic.Uint64

	// newBackoff builds the per-call wait strategy for Publish.
	newBackoff func() api.Backoff
}

// NewProducer wraps ring. If newBackoff is nil, blocking publishes use an
// exponential spin capped at 32 iterations.
func NewProducer(ring api.BucketRing, newBackoff func() api.Backoff) *Producer {
	if newBackoff == nil {
		newBackoff = func() api.Backoff { return &backoff.Exponential{Max: 32} }
	}
	return &Producer{ring: ring, newBackoff: newBackoff}
}

// TryPublish copies payload into a reserved bucket and commits it.
// Returns api.ErrRingFull without side effects when no bucket is free,
// api.ErrPayloadTooLarge when the payload cannot fit a bucket.
func (p *Producer) TryPublish(payload []byte) error {
	if len(payload) > p.ring.BucketSize() {
		return api.ErrPayloadTooLarge
	}

	p.attempts.Add(1)
	res, ok := p.ring.Reserve(uint32(len(payload)))
	if !ok {
		p.full.Add(1)
		return api.ErrRingFull
	}
	copy(res.Data, payload)
	p.ring.Commit(res)
	p.published.Add(1)
	return nil
}

// Publish retries TryPublish with backoff until it succeeds or ctx ends.
// On context expiry returns api.ErrPublishTimeout.
func (p *Producer) Publish(ctx context.Context, payload []byte) error {
	bo := p.newBackoff()
	for {
		err := p.TryPublish(payload)
		if err != api.ErrRingFull {
			return err
		}
		select {
		case <-ctx.Done():
			return api.ErrPublishTimeout
		default:
		}
		bo.Wait()
	}
}

// Stats returns a snapshot of the publish counters.
func (p *Producer) Stats() ProducerStats {
	return ProducerStats{
		Attempts:  p.attempts.Load(),
		Full:      p.full.Load(),
		Published: p.published.Load(),
	}
}
