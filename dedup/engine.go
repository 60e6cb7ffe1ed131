package dedup

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Prime ladder for table sizing, per spec: the smallest prime at or above
// 1.2*expectedReads, with a fixed upper rung rather than dynamic resize.
var primeLadder = []int{1009, 10007, 100003, 1000003, 10000019, 16777259}

func tableSize(expectedReads int) int {
	want := (12*expectedReads + 9) / 10 // ceil(1.2*expectedReads)
	if want < 1 {
		want = 1
	}
	for _, p := range primeLadder {
		if p >= want {
			return p
		}
	}
	return primeLadder[len(primeLadder)-1]
}

// Default arena capacities, matching the "typical" sizes in the data
// model: scratch holds the exemplars' identifier and sequence copies and is
// larger; result holds the identifier copies of the two result tables. The
// bucket arrays and chain nodes themselves are ordinary heap objects.
const (
	DefaultScratchCapacity = 2 << 30   // 2 GiB
	DefaultResultCapacity  = 512 << 20 // 512 MiB
)

// Params configures a new Engine. KmerLen, WindowLen, NumWindows, and
// ExpectedReads must be positive; MaxOffset must be non-negative;
// MaxErrorFrac must be in [0,1].
type Params struct {
	KmerLen       int
	WindowLen     int
	NumWindows    int
	ExpectedReads int
	MaxOffset     int
	MaxErrorFrac  float64

	// ScratchCapacity and ResultCapacity override the default arena
	// sizes, in bytes. Zero selects the default.
	ScratchCapacity int
	ResultCapacity  int
}

func validateParams(p Params) error {
	switch {
	case p.KmerLen <= 0:
		return fmt.Errorf("%w: kmer_len must be positive, got %d", ErrInvalidParams, p.KmerLen)
	case p.WindowLen <= 0:
		return fmt.Errorf("%w: window_len must be positive, got %d", ErrInvalidParams, p.WindowLen)
	case p.NumWindows <= 0:
		return fmt.Errorf("%w: num_windows must be positive, got %d", ErrInvalidParams, p.NumWindows)
	case p.ExpectedReads <= 0:
		return fmt.Errorf("%w: expected_reads must be positive, got %d", ErrInvalidParams, p.ExpectedReads)
	case p.MaxOffset < 0:
		return fmt.Errorf("%w: max_offset must be non-negative, got %d", ErrInvalidParams, p.MaxOffset)
	case p.MaxErrorFrac < 0 || p.MaxErrorFrac > 1:
		return fmt.Errorf("%w: max_error_frac must be in [0,1], got %v", ErrInvalidParams, p.MaxErrorFrac)
	}
	return nil
}

// lifecycleState is the engine's two-phase state: open while accepting
// reads, finalized while serving Pass-2 queries.
type lifecycleState int

const (
	stateOpen lifecycleState = iota
	stateFinalized
)

// Engine is a two-pass, single-threaded similarity deduplication context.
// It is not safe for concurrent use by multiple goroutines; independent
// Engines may be driven concurrently from separate goroutines.
type Engine struct {
	params Params
	state  lifecycleState

	scratch *Arena
	result  *Arena

	index   *exemplarIndex
	readMap *readExemplarMap
	leaders *clusterLeaderTable

	totalReads int
}

// New validates p and creates an Engine in the open state. Validation is
// total: a single bad field fails the whole call with ErrInvalidParams.
// Arena allocation failure (only possible for unreasonably large
// capacities) fails with ErrOutOfMemory.
func New(p Params) (*Engine, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	if p.ScratchCapacity <= 0 {
		p.ScratchCapacity = DefaultScratchCapacity
	}
	if p.ResultCapacity <= 0 {
		p.ResultCapacity = DefaultResultCapacity
	}

	scratch, err := safeNewArena(p.ScratchCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}
	result, err := safeNewArena(p.ResultCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}

	size := tableSize(p.ExpectedReads)
	return &Engine{
		params:  p,
		scratch: scratch,
		result:  result,
		index:   newExemplarIndex(size),
		readMap: newReadExemplarMap(size),
		leaders: newClusterLeaderTable(size),
	}, nil
}

// safeNewArena recovers from a make() allocation panic (the only way a
// Go arena allocation can fail) and reports it as an ordinary error, with
// a stack trace attached for debug builds.
func safeNewArena(capacity int) (arena *Arena, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = pkgerrors.Errorf("allocating %d-byte arena: %v", capacity, r)
		}
	}()
	arena = NewArena(capacity)
	return arena, nil
}

// ProcessRead admits one read pair in Pass 1 and returns the identifier
// of its initial exemplar (itself, if the read opened a new cluster).
// Called after Finalize, it performs no side effects and returns id
// unchanged.
func (e *Engine) ProcessRead(id, fwd, rev, fwdQual, revQual []byte) string {
	if e.state == stateFinalized {
		return string(id)
	}
	e.totalReads++
	score := computeScore(fwd, rev, fwdQual, revQual)

	hashes := extractPairMinimizers(fwd, rev, e.params.KmerLen, e.params.WindowLen, e.params.NumWindows)
	if len(hashes) == 0 {
		// No valid k-mers: fall through as a new, un-indexed singleton;
		// there are no buckets to insert it under.
		return e.admitNewExemplar(id, score)
	}

	if matchID, ok := e.index.probe(hashes, fwd, rev, e.params.MaxOffset, e.params.MaxErrorFrac); ok {
		e.readMap.put(e.result, id, []byte(matchID))
		e.leaders.upsert(e.result, []byte(matchID), id, score)
		return matchID
	}

	exemplar := e.admitNewExemplar(id, score)
	if rec := newExemplarRecord(e.scratch, id, fwd, rev); rec != nil {
		e.index.insert(rec, hashes)
	}
	return exemplar
}

// admitNewExemplar records id as its own initial exemplar and returns its
// identifier.
func (e *Engine) admitNewExemplar(id []byte, score float64) string {
	e.readMap.put(e.result, id, id)
	e.leaders.upsert(e.result, id, id, score)
	return string(id)
}

// computeScore implements Score = fwd_len + rev_len + mean_quality, where
// mean_quality is 0 if either quality string is missing or empty.
func computeScore(fwd, rev, fwdQual, revQual []byte) float64 {
	return float64(len(fwd)+len(rev)) + meanQuality(fwdQual, revQual)
}

func meanQuality(fwdQual, revQual []byte) float64 {
	if len(fwdQual) == 0 || len(revQual) == 0 {
		return 0
	}
	return (meanPhred(fwdQual) + meanPhred(revQual)) / 2
}

func meanPhred(qual []byte) float64 {
	var sum int
	for _, b := range qual {
		sum += int(b) - 33
	}
	return float64(sum) / float64(len(qual))
}

// Finalize destroys the scratch arena and exemplar index and transitions
// the engine to the finalized state. It is idempotent and irreversible;
// no further ProcessRead calls are permitted after it.
func (e *Engine) Finalize() {
	if e.state == stateFinalized {
		return
	}
	e.scratch = nil
	e.index = nil
	e.state = stateFinalized
}

// GetFinalExemplar resolves id to the current leader of its cluster.
// Called before Finalize, it returns id unchanged. An id never seen in
// Pass 1 also returns unchanged.
func (e *Engine) GetFinalExemplar(id string) string {
	if e.state != stateFinalized {
		return id
	}
	initial, ok := e.readMap.get(id)
	if !ok {
		return id
	}
	if leader, ok := e.leaders.leaderOf(initial); ok {
		return leader
	}
	return initial
}

// Stats reports engine-wide counters. Arena usage is zero for an arena
// that has already been destroyed by Finalize.
type Stats struct {
	TotalReads       int
	UniqueClusters   int
	ScratchArenaUsed int
	ResultArenaUsed  int
}

func (e *Engine) Stats() Stats {
	return Stats{
		TotalReads:       e.totalReads,
		UniqueClusters:   e.leaders.records,
		ScratchArenaUsed: e.scratch.Used(),
		ResultArenaUsed:  e.result.Used(),
	}
}
