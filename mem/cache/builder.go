package cache

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/mem/cache/internal/replacement"
)

const configUsage = `Cache configurations must be of the form
  sets:ways:blocksize
where sets, ways, and blocksize are positive integers, with
sets and blocksize both powers of two and blocksize at least 8.`

// ParseConfigString parses a "sets:ways:linesz" description. It panics
// with the usage text when the string does not have three decimal
// fields.
func ParseConfigString(config string) (sets, ways, lineSize uint64) {
	parts := strings.Split(config, ":")
	if len(parts) != 3 {
		panic(configUsage)
	}

	var numbers [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			panic(configUsage)
		}
		numbers[i] = n
	}

	return numbers[0], numbers[1], numbers[2]
}

// Builder can build cache levels.
type Builder struct {
	sets     uint64
	ways     uint64
	lineSize uint64
	lfsrSeed uint32
}

// MakeBuilder creates a builder with a small default geometry.
func MakeBuilder() Builder {
	return Builder{
		sets:     64,
		ways:     4,
		lineSize: 64,
		lfsrSeed: 1,
	}
}

// WithSets sets the number of sets.
func (b Builder) WithSets(sets uint64) Builder {
	b.sets = sets
	return b
}

// WithWays sets the associativity.
func (b Builder) WithWays(ways uint64) Builder {
	b.ways = ways
	return b
}

// WithLineSize sets the line size in bytes.
func (b Builder) WithLineSize(lineSize uint64) Builder {
	b.lineSize = lineSize
	return b
}

// WithConfigString applies a "sets:ways:linesz" description.
func (b Builder) WithConfigString(config string) Builder {
	b.sets, b.ways, b.lineSize = ParseConfigString(config)
	return b
}

// WithLFSRSeed sets the initial value of the replacement register.
func (b Builder) WithLFSRSeed(seed uint32) Builder {
	b.lfsrSeed = seed
	return b
}

// Build builds a cache level. A single set with more than four ways
// selects the fully-associative organization.
func (b Builder) Build(name string) *Comp {
	b.parametersMustBeValid()

	idxShift := uint(bits.TrailingZeros64(b.lineSize))

	lfsr := replacement.NewLFSR()
	lfsr.Seed(b.lfsrSeed)

	comp := &Comp{
		name:     name,
		lineSize: b.lineSize,
		idxShift: idxShift,
	}

	if b.sets == 1 && b.ways > 4 {
		comp.store = newFullyAssocStore(b.ways, idxShift, lfsr)
	} else {
		comp.store = newSetAssocStore(b.sets, b.ways, idxShift, lfsr)
	}

	return comp
}

func (b Builder) parametersMustBeValid() {
	if b.sets == 0 || b.sets&(b.sets-1) != 0 {
		panic(configUsage)
	}

	if b.ways == 0 {
		panic(configUsage)
	}

	if b.lineSize < 8 || b.lineSize&(b.lineSize-1) != 0 {
		panic(configUsage)
	}
}
