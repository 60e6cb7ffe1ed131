package dedup

// leaderRecord tracks the highest-scoring member observed so far for one
// initial-exemplar cluster. key is immutable and is what lookups compare
// against; bestReadID is mutable and is what callers want reported. The
// two must never be collapsed into one field: a lookup table keyed on the
// mutable field would silently lose entries every time the leader changes.
type leaderRecord struct {
	key        string
	bestReadID string
	bestScore  float64
	count      int
	next       *leaderRecord
}

// clusterLeaderTable is keyed by initial-exemplar identifier and is
// result-arena backed.
type clusterLeaderTable struct {
	buckets []*leaderRecord
	records int
}

func newClusterLeaderTable(size int) *clusterLeaderTable {
	return &clusterLeaderTable{buckets: make([]*leaderRecord, size)}
}

func (t *clusterLeaderTable) find(key string) *leaderRecord {
	b := djb2([]byte(key)) % uint64(len(t.buckets))
	for n := t.buckets[b]; n != nil; n = n.next {
		if n.key == key {
			return n
		}
	}
	return nil
}

// upsert locates (or creates) the record for initialExemplarID, increments
// its count, and replaces bestReadID/bestScore if candidateScore is
// strictly greater than the incumbent (ties keep the incumbent). Returns
// nil only if a brand-new record was needed and the arena could not
// satisfy its key allocation; an existing record is always updated (count
// always increments) even if the candidate's own arena copy fails, in
// which case the score update is silently dropped.
func (t *clusterLeaderTable) upsert(arena *Arena, initialExemplarID, candidateReadID []byte, candidateScore float64) *leaderRecord {
	key := string(initialExemplarID)
	b := djb2(initialExemplarID) % uint64(len(t.buckets))

	rec := t.findInBucket(b, key)
	if rec == nil {
		keyc, ok := arena.DupBytes(initialExemplarID)
		if !ok {
			return nil
		}
		rec = &leaderRecord{key: keyc, bestReadID: keyc, bestScore: -1.0}
		rec.next = t.buckets[b]
		t.buckets[b] = rec
		t.records++
	}

	rec.count++
	if candidateScore > rec.bestScore {
		if idc, ok := arena.DupBytes(candidateReadID); ok {
			rec.bestReadID = idc
			rec.bestScore = candidateScore
		}
	}
	return rec
}

func (t *clusterLeaderTable) findInBucket(b uint64, key string) *leaderRecord {
	for n := t.buckets[b]; n != nil; n = n.next {
		if n.key == key {
			return n
		}
	}
	return nil
}

// leaderOf returns the current best read id for the cluster keyed by
// initialExemplarID, comparing only against the immutable key field.
func (t *clusterLeaderTable) leaderOf(initialExemplarID string) (string, bool) {
	rec := t.find(initialExemplarID)
	if rec == nil {
		return "", false
	}
	return rec.bestReadID, true
}
