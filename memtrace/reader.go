package memtrace

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/mem"
)

// A Record is one access parsed from a trace file.
type Record struct {
	Addr uint64
	Size uint64
	Type mem.AccessType
}

// A Reader parses trace files in the Logger's line format. Lines start
// with L (load), S (store), or F (instruction fetch) followed by the
// address and "size N"; anything else, such as banners, is skipped.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader creates a reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Read returns the next record. It returns io.EOF when the trace is
// exhausted.
func (r *Reader) Read() (Record, error) {
	for r.scanner.Scan() {
		record, ok := parseLine(r.scanner.Text())
		if ok {
			return record, nil
		}
	}

	if err := r.scanner.Err(); err != nil {
		return Record{}, err
	}

	return Record{}, io.EOF
}

func parseLine(line string) (Record, bool) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[2] != "size" {
		return Record{}, false
	}

	var accessType mem.AccessType
	switch fields[0] {
	case "L":
		accessType = mem.Load
	case "S":
		accessType = mem.Store
	case "F":
		accessType = mem.Fetch
	default:
		return Record{}, false
	}

	addr, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return Record{}, false
	}

	size, err := strconv.ParseUint(fields[3], 0, 64)
	if err != nil {
		return Record{}, false
	}

	return Record{Addr: addr, Size: size, Type: accessType}, true
}
