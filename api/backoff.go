// Package api
// Author: momentics@gmail.com
//
// Caller-side wait strategies for full/empty ring conditions.

package api

// Backoff is a pluggable wait strategy applied by callers between failed
// Reserve or Peek attempts. The ring itself never blocks or sleeps; any
// waiting policy lives entirely on the caller side behind this contract.
//
// Implementations are stateful and not safe for concurrent use: each
// spinning goroutine owns its own Backoff instance.
type Backoff interface {
	// Wait is invoked after a failed attempt.
	Wait()
	// Reset is invoked after a successful attempt.
	Reset()
}
