package simulation

import (
	"fmt"
	"io"

	"github.com/rs/xid"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
)

// WriterMissTrace returns a callback that logs each DRAM-bound line to
// w in the memtrace line format, so a run's miss trace can be replayed
// as the input of another run.
func WriterMissTrace(w io.Writer) cache.MissTraceFunc {
	return func(vaddr, paddr, byteSize uint64, isStore bool) {
		marker := "L"
		if isStore {
			marker = "S"
		}

		fmt.Fprintf(w, "%s %#x size %d \n", marker, paddr, byteSize)
	}
}

// A missEntry is one DRAM-bound line in the database.
type missEntry struct {
	ID       string
	VAddr    uint64
	PAddr    uint64
	ByteSize uint64
	IsStore  bool
}

// RecorderMissTrace returns a callback that stores each DRAM-bound
// line in the data recorder.
func RecorderMissTrace(
	recorder datarecording.DataRecorder,
) cache.MissTraceFunc {
	recorder.CreateTable("miss_trace", missEntry{})

	return func(vaddr, paddr, byteSize uint64, isStore bool) {
		recorder.InsertData("miss_trace", missEntry{
			ID:       xid.New().String(),
			VAddr:    vaddr,
			PAddr:    paddr,
			ByteSize: byteSize,
			IsStore:  isStore,
		})
	}
}

// CombineMissTraces fans one miss out to several callbacks in order.
func CombineMissTraces(fns ...cache.MissTraceFunc) cache.MissTraceFunc {
	return func(vaddr, paddr, byteSize uint64, isStore bool) {
		for _, fn := range fns {
			fn(vaddr, paddr, byteSize, isStore)
		}
	}
}
