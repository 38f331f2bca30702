// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// live in separate files (affinity_linux.go, affinity_windows.go, etc.)
// guarded by build tags.

package affinity

import (
	"errors"
	"runtime"

	"github.com/momentics/hioload-ring/api"
)

var errNotSupported = errors.New("affinity: not supported on this platform")

// SetAffinity pins the current OS thread to a given logical CPU on
// supported platforms. On unsupported platforms returns an error.
//
// Callers must hold runtime.LockOSThread for the pin to mean anything;
// Pinned wraps that dance.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// Pinned locks the calling goroutine to its OS thread, pins that thread
// to cpuID and runs fn. The thread stays locked for the duration of fn.
func Pinned(cpuID int, fn func()) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := SetAffinity(cpuID); err != nil {
		return err
	}
	fn()
	return nil
}

// Thread implements api.Affinity for a single OS thread.
type Thread struct{}

// Compile-time interface compliance.
var _ api.Affinity = Thread{}

// Pin locks the current OS thread and binds it to cpuID.
func (Thread) Pin(cpuID int) error {
	runtime.LockOSThread()
	if err := SetAffinity(cpuID); err != nil {
		runtime.UnlockOSThread()
		return err
	}
	return nil
}

// Unpin releases the OS thread lock taken by Pin.
func (Thread) Unpin() error {
	runtime.UnlockOSThread()
	return nil
}
