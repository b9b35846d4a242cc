// Package memtracer fans guest memory accesses out to the tracers that
// care about them. The two tracers defined here own the L1 instruction
// and data caches.
package memtracer

import (
	"github.com/sarchlab/cachesim/mem"
)

// A Tracer receives every ingested access event and decides which ones
// to act on.
type Tracer interface {
	// InterestedInRange reports whether accesses of the given type in
	// [begin, end) matter to this tracer. Hosts may use it to skip
	// event construction entirely.
	InterestedInRange(begin, end uint64, accessType mem.AccessType) bool

	// Trace delivers one access event.
	Trace(e mem.AccessEvent)
}

// A Registry is an insertion-ordered collection of tracers. It never
// shrinks.
type Registry struct {
	tracers []Tracer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Hook appends t to the fan-out list.
func (r *Registry) Hook(t Tracer) {
	r.tracers = append(r.tracers, t)
}

// Trace forwards e to every hooked tracer in insertion order.
func (r *Registry) Trace(e mem.AccessEvent) {
	for _, t := range r.tracers {
		t.Trace(e)
	}
}
