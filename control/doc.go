// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime introspection layer for hioload-ring: dynamic configuration
// with reload listeners, counter metrics, and debug probes exposing ring
// and drainer state. Everything here is off the hot path; producers and
// the consumer publish into it only at snapshot points.
package control
