package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKmerHashInvalidBaseIsZero(t *testing.T) {
	assert.Equal(t, uint64(0), kmerHash([]byte("ACNT"), 4))
}

func TestKmerHashAllAZeroIsPromotedToOne(t *testing.T) {
	assert.Equal(t, uint64(1), kmerHash([]byte("AAAA"), 4))
}

func TestKmerHashLowercase(t *testing.T) {
	assert.Equal(t, kmerHash([]byte("ACGT"), 4), kmerHash([]byte("acgt"), 4))
}

func TestExtractMinimizersSkipsShortWindow(t *testing.T) {
	// Window 1 starts beyond what a kmer of length 4 can fit in a 10-base
	// sequence with window_len=6: start=6, 6+4=10 <= 10 is OK, so this
	// exercises the boundary rather than skip; use a shorter sequence to
	// force a true skip.
	seq := []byte("ACGTAC") // len 6
	hashes := extractMinimizers(nil, seq, 4, 6, 2)
	// window 0: start=0 limit=min(0+6-4,6-4)=2, i in [0,2]
	// window 1: start=6, 6+4=10>6, skipped.
	assert.Len(t, hashes, 1)
}

func TestExtractMinimizersNoValidKmer(t *testing.T) {
	seq := []byte("NNNNNNNNNN")
	hashes := extractMinimizers(nil, seq, 4, 6, 2)
	assert.Empty(t, hashes)
}

func TestExtractPairMinimizersInterleavesOrder(t *testing.T) {
	// Construct sequences where fwd and rev each yield exactly one
	// minimizer per window so the interleave order is directly observable.
	fwd := []byte("AAAAAAAAAAAA") // all-A kmers hash to 1 everywhere
	rev := []byte("CCCCCCCCCCCC")
	hashes := extractPairMinimizers(fwd, rev, 4, 6, 2)
	assert.Len(t, hashes, 4)
	// forward windows hash to 1 (promoted), reverse windows hash to a
	// larger constant; interleaved order means index 0,2 are forward.
	assert.Equal(t, hashes[0], hashes[2])
	assert.Equal(t, hashes[1], hashes[3])
}
