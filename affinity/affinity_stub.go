//go:build !linux && !windows
// +build !linux,!windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package affinity

// setAffinityPlatform reports that CPU affinity is unavailable here.
func setAffinityPlatform(cpuID int) error {
	return errNotSupported
}

// SetNiceness reports that priority adjustment is unavailable here.
func SetNiceness(niceness int) error {
	return errNotSupported
}
