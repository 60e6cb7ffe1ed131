package dedup

import "math"

// matchSingle reports whether a and b are similar under a shift+mismatch
// budget: there must exist an integer offset o in [-maxOffset, +maxOffset]
// such that the overlapping region has at most budget(overlap) errors,
// with the offset magnitude charged against the same budget as
// positional mismatches. Two empty sequences always match.
//
// The budget for a given overlap is ceil(maxErrorFrac * overlap), not a
// bare real-number product: an overlap shrinks by the offset itself (an
// offset of 1 against two length-100 sequences compares only 99 bases),
// and without rounding up, a pure one-base shift with zero substitutions
// would be rejected even though it is the textbook case this predicate
// exists to accept. Rounding the budget up to the next integer is what
// makes that case, and the combined shift+substitution case that must
// still fail, land on the threshold the acceptance rule describes.
func matchSingle(a, b []byte, maxOffset int, maxErrorFrac float64) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	for o := -maxOffset; o <= maxOffset; o++ {
		var overlap, ai, bi int
		if o >= 0 {
			overlap = min(len(a)-o, len(b))
			ai, bi = o, 0
		} else {
			overlap = min(len(a), len(b)+o)
			ai, bi = 0, -o
		}
		if overlap <= 0 {
			continue
		}
		mismatches := 0
		for i := 0; i < overlap; i++ {
			if a[ai+i] != b[bi+i] {
				mismatches++
			}
		}
		budget := math.Ceil(maxErrorFrac*float64(overlap) - 1e-9)
		if float64(iabs(o)+mismatches) <= budget {
			return true
		}
	}
	return false
}

// matchPair reports whether query (fwd, rev) matches candidate exemplar
// (exFwd, exRev) in either standard orientation (fwd~exFwd and
// rev~exRev) or swapped orientation (fwd~exRev and rev~exFwd). The swap
// is required by downstream pipelines and must not be removed.
func matchPair(fwd, rev, exFwd, exRev []byte, maxOffset int, maxErrorFrac float64) bool {
	if matchSingle(fwd, exFwd, maxOffset, maxErrorFrac) && matchSingle(rev, exRev, maxOffset, maxErrorFrac) {
		return true
	}
	return matchSingle(fwd, exRev, maxOffset, maxErrorFrac) && matchSingle(rev, exFwd, maxOffset, maxErrorFrac)
}
