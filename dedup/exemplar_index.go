package dedup

// exemplarRecord is the scratch-arena-backed payload for one exemplar: an
// identifier and the two mate sequences that produced it. One record may
// be reachable from many hash buckets (one per minimizer hash it
// produced); it is shared, not copied, across those buckets.
type exemplarRecord struct {
	id, fwd, rev string
}

// exemplarNode is a per-bucket chain link pointing at a (possibly shared)
// exemplarRecord. Separating the node from the record lets one record
// appear in several buckets' chains simultaneously, each with its own
// "next" pointer.
type exemplarNode struct {
	rec  *exemplarRecord
	next *exemplarNode
}

// exemplarIndex maps minimizer hashes to buckets of candidate exemplars.
// Each bucket is a singly linked, head-first (LIFO) list: the most
// recently inserted exemplar is examined first.
type exemplarIndex struct {
	buckets []*exemplarNode
}

func newExemplarIndex(size int) *exemplarIndex {
	return &exemplarIndex{buckets: make([]*exemplarNode, size)}
}

// newExemplarRecord copies id, fwd, and rev into arena and returns a record
// ready for insertion, or nil if the arena could not satisfy any of the
// three allocations.
func newExemplarRecord(arena *Arena, id, fwd, rev []byte) *exemplarRecord {
	idc, ok := arena.DupBytes(id)
	if !ok {
		return nil
	}
	fwdc, ok := arena.DupBytes(fwd)
	if !ok {
		return nil
	}
	revc, ok := arena.DupBytes(rev)
	if !ok {
		return nil
	}
	return &exemplarRecord{id: idc, fwd: fwdc, rev: revc}
}

// insert prepends rec into the bucket for each hash in hashes, so the
// same record becomes reachable from every one of its minimizer buckets.
func (x *exemplarIndex) insert(rec *exemplarRecord, hashes []uint64) {
	size := uint64(len(x.buckets))
	for _, h := range hashes {
		b := h % size
		x.buckets[b] = &exemplarNode{rec: rec, next: x.buckets[b]}
	}
}

// probe walks the bucket for each hash in order and, within a bucket,
// candidates head-first; it returns the identifier of the first
// candidate whose pair-match predicate succeeds against (fwd, rev), or
// "", false if every bucket is exhausted without a hit.
func (x *exemplarIndex) probe(hashes []uint64, fwd, rev []byte, maxOffset int, maxErrorFrac float64) (string, bool) {
	size := uint64(len(x.buckets))
	for _, h := range hashes {
		b := h % size
		for n := x.buckets[b]; n != nil; n = n.next {
			if matchPair(fwd, rev, []byte(n.rec.fwd), []byte(n.rec.rev), maxOffset, maxErrorFrac) {
				return n.rec.id, true
			}
		}
	}
	return "", false
}
