// Package simulation wires the tracers and cache levels into one
// process-scope hierarchy and owns its lifecycle.
package simulation

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/xid"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/memtracer"
	"github.com/sarchlab/cachesim/monitoring"
)

// A Simulation holds one cache hierarchy and the shared state around
// it: the tracer registry, the output destination, the miss-trace
// callback, and the enable flag that gates the whole pipeline.
//
// Levels are added with InitL1/InitL2/InitL3, the pipeline is armed
// with Start, and Terminate emits the final statistics.
type Simulation struct {
	id string

	out     io.Writer
	outFile *os.File

	registry *memtracer.Registry

	l1i *memtracer.FetchTracer
	l1d *memtracer.LoadStoreTracer
	l2  *cache.Comp
	l3  *cache.Comp

	missTrace cache.MissTraceFunc
	recorder  datarecording.DataRecorder
	monitor   *monitoring.Monitor

	lfsrSeed uint32
	enabled  bool
}

// NewSimulation creates an empty hierarchy.
func NewSimulation() *Simulation {
	return &Simulation{
		id:       xid.New().String(),
		registry: memtracer.NewRegistry(),
		lfsrSeed: 1,
	}
}

// ID returns the simulation's unique ID.
func (s *Simulation) ID() string {
	return s.id
}

// SetMissTraceFunc installs the callback that the outermost level will
// fire once per miss after Start. The callback receives the
// line-granular stream that would reach DRAM.
func (s *Simulation) SetMissTraceFunc(fn cache.MissTraceFunc) {
	s.missTrace = fn
}

// L1I returns the L1 instruction cache, or nil before InitL1.
func (s *Simulation) L1I() cache.Level {
	if s.l1i == nil {
		return nil
	}
	return s.l1i.Cache()
}

// L1D returns the L1 data cache, or nil before InitL1.
func (s *Simulation) L1D() cache.Level {
	if s.l1d == nil {
		return nil
	}
	return s.l1d.Cache()
}

// L2 returns the L2 cache, or nil when not configured.
func (s *Simulation) L2() cache.Level {
	if s.l2 == nil {
		return nil
	}
	return s.l2
}

// L3 returns the L3 cache, or nil when not configured.
func (s *Simulation) L3() cache.Level {
	if s.l3 == nil {
		return nil
	}
	return s.l3
}

// InitL1 constructs the L1 instruction and data caches from one
// "sets:ways:linesz" string.
func (s *Simulation) InitL1(config string) {
	if s.l1i != nil {
		panic("L1 caches already defined")
	}

	builder := cache.MakeBuilder().
		WithConfigString(config).
		WithLFSRSeed(s.lfsrSeed)

	s.l1i = memtracer.NewFetchTracer(builder.Build("I$"))
	s.l1d = memtracer.NewLoadStoreTracer(builder.Build("D$"))
}

// InitL2 constructs the L2 cache and connects both L1 miss handlers to
// it.
func (s *Simulation) InitL2(config string) {
	if s.l1i == nil || s.l1d == nil {
		panic("cannot define L2 without L1 cache")
	}
	if s.l2 != nil {
		panic("L2 cache already defined")
	}

	s.l2 = cache.MakeBuilder().
		WithConfigString(config).
		WithLFSRSeed(s.lfsrSeed).
		Build("L2$")

	s.l1i.SetMissHandler(s.l2)
	s.l1d.SetMissHandler(s.l2)
}

// InitL3 constructs the L3 cache and connects the L2 miss handler to
// it.
func (s *Simulation) InitL3(config string) {
	if s.l2 == nil {
		panic("cannot define L3 without L2 cache")
	}
	if s.l3 != nil {
		panic("L3 cache already defined")
	}

	s.l3 = cache.MakeBuilder().
		WithConfigString(config).
		WithLFSRSeed(s.lfsrSeed).
		Build("L3$")

	s.l2.SetMissHandler(s.l3)
}

// Start hooks the L1 tracers into the registry, opens the output
// destination (stdout when filename is empty), enables miss tracing on
// the outermost configured level, and arms the pipeline.
func (s *Simulation) Start(filename string) {
	if s.l1i == nil || s.l1d == nil {
		panic("cannot start the simulation without L1 caches")
	}

	s.out = os.Stdout
	if filename != "" {
		f, err := os.Create(filename)
		if err != nil {
			panic(err)
		}
		s.outFile = f
		s.out = f
	}

	s.registry.Hook(s.l1i)
	s.registry.Hook(s.l1d)

	switch {
	case s.l3 != nil:
		fmt.Fprintf(s.out, "L3 misses will be traced\n")
		s.l3.EnableMissTrace(s.missTrace)
	case s.l2 != nil:
		fmt.Fprintf(s.out, "L2 misses will be traced\n")
		s.l2.EnableMissTrace(s.missTrace)
	default:
		fmt.Fprintf(s.out, "L1 misses will be traced\n")
		s.l1i.EnableMissTrace(s.missTrace)
		s.l1d.EnableMissTrace(s.missTrace)
	}

	s.enabled = true
}

// Load reports a data read to the hierarchy.
func (s *Simulation) Load(vaddr, paddr, byteSize uint64) {
	s.ingest(mem.AccessEvent{
		VAddr: vaddr, PAddr: paddr, ByteSize: byteSize, Type: mem.Load,
	})
}

// Store reports a data write to the hierarchy.
func (s *Simulation) Store(vaddr, paddr, byteSize uint64) {
	s.ingest(mem.AccessEvent{
		VAddr: vaddr, PAddr: paddr, ByteSize: byteSize, Type: mem.Store,
	})
}

// Fetch reports an instruction fetch to the hierarchy.
func (s *Simulation) Fetch(vaddr, paddr, byteSize uint64) {
	s.ingest(mem.AccessEvent{
		VAddr: vaddr, PAddr: paddr, ByteSize: byteSize, Type: mem.Fetch,
	})
}

func (s *Simulation) ingest(e mem.AccessEvent) {
	if !s.enabled {
		return
	}

	s.registry.Trace(e)
}

// Terminate prints the per-level statistics in construction order,
// records them when a data recorder is attached, and releases the
// output file. The pipeline is disabled afterwards.
func (s *Simulation) Terminate() {
	if s.out == nil {
		s.out = os.Stdout
	}

	if s.l1i != nil {
		s.l1i.PrintStats(s.out)
		s.l1d.PrintStats(s.out)
	}
	if s.l2 != nil {
		s.l2.PrintStats(s.out)
	}
	if s.l3 != nil {
		s.l3.PrintStats(s.out)
	}

	if s.recorder != nil {
		s.recordFinalStats()
		s.recorder.Close()
		s.recorder = nil
	}

	if s.outFile != nil {
		s.outFile.Close()
		s.outFile = nil
	}

	s.enabled = false
}

// A statsEntry is one level's final counters in the database.
type statsEntry struct {
	Level         string
	BytesRead     uint64
	BytesWritten  uint64
	ReadAccesses  uint64
	WriteAccesses uint64
	ReadMisses    uint64
	WriteMisses   uint64
	Writebacks    uint64
	MissRate      float64
}

func (s *Simulation) recordFinalStats() {
	s.recorder.CreateTable("cache_stats", statsEntry{})

	for _, level := range s.levels() {
		stats := level.Stats()
		s.recorder.InsertData("cache_stats", statsEntry{
			Level:         level.Name(),
			BytesRead:     stats.BytesRead,
			BytesWritten:  stats.BytesWritten,
			ReadAccesses:  stats.ReadAccesses,
			WriteAccesses: stats.WriteAccesses,
			ReadMisses:    stats.ReadMisses,
			WriteMisses:   stats.WriteMisses,
			Writebacks:    stats.Writebacks,
			MissRate:      stats.MissRate(),
		})
	}

	s.recorder.Flush()
}

func (s *Simulation) levels() []cache.Level {
	levels := []cache.Level{}

	if s.l1i != nil {
		levels = append(levels, s.l1i.Cache(), s.l1d.Cache())
	}
	if s.l2 != nil {
		levels = append(levels, s.l2)
	}
	if s.l3 != nil {
		levels = append(levels, s.l3)
	}

	return levels
}
