package memtracer

import (
	"io"

	"github.com/sarchlab/cachesim/mem"
	"github.com/sarchlab/cachesim/mem/cache"
)

// A cacheTracer owns one cache level and forwards hierarchy wiring to
// it.
type cacheTracer struct {
	cache cache.Level
}

// Cache returns the owned level.
func (t *cacheTracer) Cache() cache.Level {
	return t.cache
}

// SetMissHandler connects the owned level to the next level.
func (t *cacheTracer) SetMissHandler(next cache.Level) {
	t.cache.SetMissHandler(next)
}

// EnableMissTrace installs fn on the owned level.
func (t *cacheTracer) EnableMissTrace(fn cache.MissTraceFunc) {
	t.cache.EnableMissTrace(fn)
}

// PrintStats writes the owned level's counter report to w.
func (t *cacheTracer) PrintStats(w io.Writer) {
	t.cache.PrintStats(w)
}

// A FetchTracer feeds instruction fetches to its L1 instruction cache.
type FetchTracer struct {
	cacheTracer
}

// NewFetchTracer creates a tracer owning the given level.
func NewFetchTracer(level cache.Level) *FetchTracer {
	return &FetchTracer{cacheTracer{cache: level}}
}

// InterestedInRange reports interest in fetches only.
func (t *FetchTracer) InterestedInRange(
	begin, end uint64,
	accessType mem.AccessType,
) bool {
	return accessType == mem.Fetch
}

// Trace forwards fetch events to the cache as reads.
func (t *FetchTracer) Trace(e mem.AccessEvent) {
	if e.Type != mem.Fetch {
		return
	}

	t.cache.Access(e.VAddr, e.PAddr, e.ByteSize, false)
}

// A LoadStoreTracer feeds data loads and stores to its L1 data cache.
type LoadStoreTracer struct {
	cacheTracer
}

// NewLoadStoreTracer creates a tracer owning the given level.
func NewLoadStoreTracer(level cache.Level) *LoadStoreTracer {
	return &LoadStoreTracer{cacheTracer{cache: level}}
}

// InterestedInRange reports interest in loads and stores.
func (t *LoadStoreTracer) InterestedInRange(
	begin, end uint64,
	accessType mem.AccessType,
) bool {
	return accessType == mem.Load || accessType == mem.Store
}

// Trace forwards load and store events to the cache.
func (t *LoadStoreTracer) Trace(e mem.AccessEvent) {
	if e.Type != mem.Load && e.Type != mem.Store {
		return
	}

	t.cache.Access(e.VAddr, e.PAddr, e.ByteSize, e.IsStore())
}
