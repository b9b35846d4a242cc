package cache

import (
	"github.com/sarchlab/cachesim/mem/cache/internal/replacement"
)

// A setAssocStore keeps tags in a flat sets×ways array indexed by
// idx*ways+way. A parallel array records each resident line's virtual
// source address for writeback tracing.
type setAssocStore struct {
	sets     uint64
	ways     uint64
	idxShift uint

	tags []uint64
	srcs []uint64

	lfsr *replacement.LFSR
}

func newSetAssocStore(
	sets, ways uint64,
	idxShift uint,
	lfsr *replacement.LFSR,
) *setAssocStore {
	return &setAssocStore{
		sets:     sets,
		ways:     ways,
		idxShift: idxShift,
		tags:     make([]uint64, sets*ways),
		srcs:     make([]uint64, sets*ways),
		lfsr:     lfsr,
	}
}

// slotOf returns the array position of paddr's resident line, or -1.
func (s *setAssocStore) slotOf(paddr uint64) int {
	idx := (paddr >> s.idxShift) & (s.sets - 1)
	tag := (paddr >> s.idxShift) | tagValid

	base := idx * s.ways
	for w := uint64(0); w < s.ways; w++ {
		if s.tags[base+w]&^tagDirty == tag {
			return int(base + w)
		}
	}

	return -1
}

func (s *setAssocStore) checkTag(paddr uint64) bool {
	return s.slotOf(paddr) >= 0
}

func (s *setAssocStore) setDirty(paddr uint64) {
	s.tags[s.slotOf(paddr)] |= tagDirty
}

func (s *setAssocStore) victimize(paddr, src uint64) (oldTag, oldSrc uint64) {
	idx := (paddr >> s.idxShift) & (s.sets - 1)
	way := uint64(s.lfsr.Next()) % s.ways

	slot := idx*s.ways + way
	oldTag = s.tags[slot]
	oldSrc = s.srcs[slot]
	s.tags[slot] = (paddr >> s.idxShift) | tagValid
	s.srcs[slot] = src

	return oldTag, oldSrc
}
