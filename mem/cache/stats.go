package cache

import (
	"fmt"
	"io"
)

// Stats aggregates the counters of one cache level. Writebacks from an
// upper level count as write accesses here.
type Stats struct {
	BytesRead     uint64
	BytesWritten  uint64
	ReadAccesses  uint64
	WriteAccesses uint64
	ReadMisses    uint64
	WriteMisses   uint64
	Writebacks    uint64
}

// TotalAccesses returns the number of reads and writes combined.
func (s Stats) TotalAccesses() uint64 {
	return s.ReadAccesses + s.WriteAccesses
}

// MissRate returns the percentage of accesses that missed. It is 0 for
// a level that was never accessed.
func (s Stats) MissRate() float64 {
	total := s.TotalAccesses()
	if total == 0 {
		return 0
	}

	return 100 * float64(s.ReadMisses+s.WriteMisses) / float64(total)
}

func (s Stats) fprint(w io.Writer, name string) {
	if s.TotalAccesses() == 0 {
		return
	}

	fmt.Fprintf(w, "======== %s ========\n", name)
	fmt.Fprintf(w, "Bytes Read: %d\n", s.BytesRead)
	fmt.Fprintf(w, "Bytes Written: %d\n", s.BytesWritten)
	fmt.Fprintf(w, "Read Accesses: %d\n", s.ReadAccesses)
	fmt.Fprintf(w, "Write Accesses: %d\n", s.WriteAccesses)
	fmt.Fprintf(w, "Read Misses: %d\n", s.ReadMisses)
	fmt.Fprintf(w, "Write Misses: %d\n", s.WriteMisses)
	fmt.Fprintf(w, "Writebacks: %d\n", s.Writebacks)
	fmt.Fprintf(w, "Miss Rate: %.3f\n", s.MissRate())
}
