// Package api
// Author: momentics@gmail.com
//
// CPU affinity and thread pinning definitions.

package api

// Affinity pins execution to particular CPUs.
type Affinity interface {
	// Pin locks the current OS thread to a logical CPU.
	Pin(cpuID int) error
	// Unpin removes affinity restrictions set by Pin.
	Unpin() error
}
