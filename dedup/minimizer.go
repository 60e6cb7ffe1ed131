package dedup

// baseCode maps a nucleotide byte to its 2-bit code; any byte outside
// {A,C,G,T,a,c,g,t} maps to -1 and invalidates the k-mer it appears in.
// Grounded on fusion.asciiToKmerMap's ACGT encoding, generalized here to a
// minimizer hash instead of a fixed-width genomic kmer key.
var baseCode [256]int8

func init() {
	for i := range baseCode {
		baseCode[i] = -1
	}
	baseCode['A'], baseCode['a'] = 0, 0
	baseCode['C'], baseCode['c'] = 1, 1
	baseCode['G'], baseCode['g'] = 2, 2
	baseCode['T'], baseCode['t'] = 3, 3
}

// kmerHash returns the 2-bit-packed hash of seq[0:k]. It returns 0 if any
// base in the window is invalid. Zero is reserved to mean "no valid
// k-mer", so a naturally-zero hash (an all-A k-mer) is promoted to 1.
func kmerHash(seq []byte, k int) uint64 {
	var h uint64
	for i := 0; i < k; i++ {
		c := baseCode[seq[i]]
		if c < 0 {
			return 0
		}
		h = (h << 2) | uint64(c)
	}
	if h == 0 {
		return 1
	}
	return h
}

// extractMinimizers appends up to numWindows minimizer hashes computed
// over seq to dst and returns the extended slice. Window w covers
// [w*windowLen, w*windowLen+windowLen); its minimizer is the smallest
// non-zero k-mer hash found in that window. A window that cannot fit a
// full k-mer, or whose k-mers are all invalid, contributes nothing.
func extractMinimizers(dst []uint64, seq []byte, kmerLen, windowLen, numWindows int) []uint64 {
	seqLen := len(seq)
	for w := 0; w < numWindows; w++ {
		dst = extractWindowMinimizer(dst, seq, seqLen, w, kmerLen, windowLen)
	}
	return dst
}

// extractPairMinimizers extracts minimizers from fwd and rev, yielding up
// to 2*numWindows hashes in the order forward window 0, reverse window 0,
// forward window 1, reverse window 1, .... This interleaving is what
// downstream bucket probing walks in, so it is what determines which
// candidate is examined first when more than one bucket could match.
// Duplicate hashes are not removed.
func extractPairMinimizers(fwd, rev []byte, kmerLen, windowLen, numWindows int) []uint64 {
	dst := make([]uint64, 0, 2*numWindows)
	fwdLen := len(fwd)
	revLen := len(rev)
	for w := 0; w < numWindows; w++ {
		dst = extractWindowMinimizer(dst, fwd, fwdLen, w, kmerLen, windowLen)
		dst = extractWindowMinimizer(dst, rev, revLen, w, kmerLen, windowLen)
	}
	return dst
}

// extractWindowMinimizer computes the minimizer for window w of seq (whose
// length is seqLen) and appends it to dst if one exists.
func extractWindowMinimizer(dst []uint64, seq []byte, seqLen, w, kmerLen, windowLen int) []uint64 {
	start := w * windowLen
	if start+kmerLen > seqLen {
		return dst
	}
	limit := start + windowLen - kmerLen
	if m := seqLen - kmerLen; m < limit {
		limit = m
	}
	var best uint64
	for i := start; i <= limit; i++ {
		if h := kmerHash(seq[i:i+kmerLen], kmerLen); h != 0 && (best == 0 || h < best) {
			best = h
		}
	}
	if best != 0 {
		dst = append(dst, best)
	}
	return dst
}
