// File: backoff/backoff.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Caller-side wait strategies for spinning on a full or empty ring.
// The ring core never blocks; producers and the consumer pick one of
// these policies (or bring their own) and drive it from their own loop.

package backoff

import (
	"runtime"

	"github.com/momentics/hioload-ring/api"
)

// Compile-time interface compliance.
var (
	_ api.Backoff = (*Spin)(nil)
	_ api.Backoff = (*Yield)(nil)
	_ api.Backoff = (*Exponential)(nil)
)

// Spin burns a fixed number of iterations per failed attempt. Suited to
// very short expected waits on dedicated cores.
type Spin struct {
	// Cycles per Wait call. Zero means 32.
	Cycles uint32
}

func (s *Spin) Wait() {
	n := s.Cycles
	if n == 0 {
		n = 32
	}
	spin(n)
}

func (s *Spin) Reset() {}

// Yield hands the processor to the scheduler on every failed attempt.
type Yield struct{}

func (Yield) Wait()  { runtime.Gosched() }
func (Yield) Reset() {}

// Exponential doubles a busy-spin window after every failed attempt up to
// a cap, then starts yielding to the scheduler; Reset shrinks the window
// back to one iteration after a success.
type Exponential struct {
	// Max caps the spin window. Zero means 32.
	Max   uint32
	count uint32
}

func (e *Exponential) Wait() {
	max := e.Max
	if max == 0 {
		max = 32
	}
	if e.count == 0 {
		e.count = 1
	}
	spin(e.count)
	if e.count < max {
		e.count <<= 1
	} else {
		// Saturated: stop burning cycles and let the scheduler run
		// whoever is holding things up.
		runtime.Gosched()
	}
}

func (e *Exponential) Reset() {
	e.count = 1
}

//go:noinline
func spin(n uint32) {
	var x uint32
	for i := uint32(0); i < n; i++ {
		x += i
	}
	runtime.KeepAlive(x)
}
