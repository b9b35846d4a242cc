package cache

import (
	"github.com/google/btree"

	"github.com/sarchlab/cachesim/mem/cache/internal/replacement"
)

// A faLine is one resident line of a fully-associative level, keyed by
// physical line number.
type faLine struct {
	lineNum uint64
	tag     uint64
	src     uint64
}

func (l *faLine) Less(other btree.Item) bool {
	return l.lineNum < other.(*faLine).lineNum
}

// A fullyAssocStore keeps residency in a line-number-ordered tree so
// that walking entries during victim selection is reproducible across
// runs. Capacity is bounded by the way count; reaching it forces a
// victim on the next install.
type fullyAssocStore struct {
	ways     uint64
	idxShift uint

	lines *btree.BTree

	lfsr *replacement.LFSR
}

func newFullyAssocStore(
	ways uint64,
	idxShift uint,
	lfsr *replacement.LFSR,
) *fullyAssocStore {
	return &fullyAssocStore{
		ways:     ways,
		idxShift: idxShift,
		lines:    btree.New(2),
		lfsr:     lfsr,
	}
}

func (s *fullyAssocStore) checkTag(paddr uint64) bool {
	return s.lines.Get(&faLine{lineNum: paddr >> s.idxShift}) != nil
}

func (s *fullyAssocStore) setDirty(paddr uint64) {
	line := s.lines.Get(&faLine{lineNum: paddr >> s.idxShift})
	line.(*faLine).tag |= tagDirty
}

func (s *fullyAssocStore) victimize(paddr, src uint64) (oldTag, oldSrc uint64) {
	if uint64(s.lines.Len()) == s.ways {
		steps := uint64(s.lfsr.Next()) % s.ways

		var victim *faLine
		s.lines.Ascend(func(item btree.Item) bool {
			if steps == 0 {
				victim = item.(*faLine)
				return false
			}
			steps--
			return true
		})

		oldTag = victim.tag
		oldSrc = victim.src
		s.lines.Delete(victim)
	}

	lineNum := paddr >> s.idxShift
	s.lines.ReplaceOrInsert(&faLine{
		lineNum: lineNum,
		tag:     lineNum | tagValid,
		src:     src,
	})

	return oldTag, oldSrc
}
