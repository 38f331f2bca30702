// control/hub.go
// Author: momentics <momentics@gmail.com>
//
// Hub aggregates config, metrics and debug probes behind api.Control.

package control

import (
	"github.com/momentics/hioload-ring/api"
)

// Compile-time interface compliance.
var _ api.Control = (*Hub)(nil)

// Hub is the single entry point consumers of api.Control see.
type Hub struct {
	Config  *ConfigStore
	Metrics *MetricsRegistry
	Probes  *DebugProbes
}

// NewHub wires up an empty control plane.
func NewHub() *Hub {
	return &Hub{
		Config:  NewConfigStore(),
		Metrics: NewMetricsRegistry(),
		Probes:  NewDebugProbes(),
	}
}

// GetConfig returns a config snapshot.
func (h *Hub) GetConfig() map[string]any {
	return h.Config.GetSnapshot()
}

// SetConfig merges cfg and fires reload listeners.
func (h *Hub) SetConfig(cfg map[string]any) error {
	h.Config.SetConfig(cfg)
	return nil
}

// Stats merges counter metrics with live probe output.
func (h *Hub) Stats() map[string]any {
	out := h.Metrics.GetSnapshot()
	for k, v := range h.Probes.DumpState() {
		out[k] = v
	}
	return out
}

// OnReload registers a config reload listener.
func (h *Hub) OnReload(fn func()) {
	h.Config.OnReload(fn)
}

// RegisterDebugProbe registers a named live state probe.
func (h *Hub) RegisterDebugProbe(name string, fn func() any) {
	h.Probes.RegisterProbe(name, fn)
}
