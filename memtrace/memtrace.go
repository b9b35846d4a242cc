// Package memtrace implements the raw memory-trace log: a
// region-filtered record of guest accesses written as one line per
// access, independent of the cache hierarchy.
package memtrace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const regionUsage = `Usage: -memtrace <start>:<end>
       (e.g., -memtrace 0x80000:0x90000)`

// A Logger writes raw access records. Load and Store records are not
// written until both Enable and Start have been called; the RAM-base
// line and the location marker are written regardless.
type Logger struct {
	w io.Writer

	enabled bool
	started bool

	regionStart uint64
	regionEnd   uint64

	ramBase    uint64
	ramBaseSet bool
}

// NewLogger creates a logger writing to w, with the filter region
// covering the whole address space.
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		w:         w,
		regionEnd: ^uint64(0),
	}
}

// Enable arms the logger. Recording still waits for Start.
func (l *Logger) Enable() {
	l.enabled = true
}

// Start begins recording. The host calls this when the guest reaches
// the code region of interest.
func (l *Logger) Start() {
	l.started = true
}

// Stop suspends recording.
func (l *Logger) Stop() {
	l.started = false
}

// SetRegion restricts recording to RAM offsets in [start, end), parsed
// from a "start:end" pair of hex numbers. A malformed region panics
// with the usage text.
func (l *Logger) SetRegion(region string) {
	if region == "" {
		return
	}

	parts := strings.Split(region, ":")
	if len(parts) != 2 {
		panic(regionUsage)
	}

	var start, end uint64
	if _, err := fmt.Sscanf(parts[0], "%x", &start); err != nil {
		panic(regionUsage)
	}
	if _, err := fmt.Sscanf(parts[1], "%x", &end); err != nil {
		panic(regionUsage)
	}

	l.regionStart = start
	l.regionEnd = end

	fmt.Fprintf(os.Stderr, "region_start: %x\n", l.regionStart)
	fmt.Fprintf(os.Stderr, "region_end: %x\n", l.regionEnd)
}

// SetRAMBase records the host address the guest RAM is mapped at. Only
// the first call takes effect; the first mapping is the system memory.
func (l *Logger) SetRAMBase(base, size uint64) {
	if l.ramBaseSet {
		return
	}

	l.ramBase = base
	l.ramBaseSet = true
	fmt.Fprintf(l.w, "RAM base: %x, size:%x\n", base, size)
}

// Load records a read access.
func (l *Logger) Load(addr, size uint64) {
	l.record(addr, size, false)
}

// Store records a write access.
func (l *Logger) Store(addr, size uint64) {
	l.record(addr, size, true)
}

// MarkLocation writes the trace synchronization marker.
func (l *Logger) MarkLocation() {
	fmt.Fprintf(l.w, "===UCBTRACE===")
}

func (l *Logger) record(addr, size uint64, isStore bool) {
	if !l.enabled || !l.started {
		return
	}

	offset := addr - l.ramBase
	if offset < l.regionStart || offset >= l.regionEnd {
		return
	}

	if isStore {
		fmt.Fprintf(l.w, "S %#x size %d \n", addr, size)
	} else {
		fmt.Fprintf(l.w, "L %#x size %d \n", addr, size)
	}
}
