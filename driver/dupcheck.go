package driver

import (
	farm "github.com/dgryski/go-farm"
)

// seenIDs is a bounded, probabilistic bit-set used to catch a pipeline
// bug where the same read ID is fed to ProcessRead more than once, which
// violates the driver contract in the core's spec (each read processed
// exactly once). A false positive merely logs a warning; it is not load
// bearing for correctness of the dedup result itself, so a plain
// farm-hashed bit array is sufficient rather than a full Bloom filter.
type seenIDs struct {
	bits []uint64
}

func newSeenIDs(expectedReads int) *seenIDs {
	n := expectedReads * 8
	if n < 64 {
		n = 64
	}
	return &seenIDs{bits: make([]uint64, (n+63)/64)}
}

// markAndCheck returns true if id (or a hash collision with a prior id)
// was already marked.
func (s *seenIDs) markAndCheck(id []byte) bool {
	h := farm.Hash64(id) % uint64(len(s.bits)*64)
	word, bit := h/64, h%64
	mask := uint64(1) << bit
	seen := s.bits[word]&mask != 0
	s.bits[word] |= mask
	return seen
}
