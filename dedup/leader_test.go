package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClusterLeaderTableUpsertCreatesSingleton(t *testing.T) {
	arena := NewArena(4096)
	tbl := newClusterLeaderTable(17)

	tbl.upsert(arena, []byte("read1"), []byte("read1"), 10.0)
	leader, ok := tbl.leaderOf("read1")
	assert.True(t, ok)
	assert.Equal(t, "read1", leader)
	assert.Equal(t, 1, tbl.records)
}

func TestClusterLeaderTableMonotoneScore(t *testing.T) {
	arena := NewArena(4096)
	tbl := newClusterLeaderTable(17)

	tbl.upsert(arena, []byte("exA"), []byte("exA"), 5.0)
	tbl.upsert(arena, []byte("exA"), []byte("read2"), 3.0) // lower score, must not replace leader
	leader, _ := tbl.leaderOf("exA")
	assert.Equal(t, "exA", leader)

	tbl.upsert(arena, []byte("exA"), []byte("read3"), 9.0) // higher score, must replace
	leader, _ = tbl.leaderOf("exA")
	assert.Equal(t, "read3", leader)
}

func TestClusterLeaderTableTieKeepsIncumbent(t *testing.T) {
	arena := NewArena(4096)
	tbl := newClusterLeaderTable(17)

	tbl.upsert(arena, []byte("exA"), []byte("exA"), 5.0)
	tbl.upsert(arena, []byte("exA"), []byte("read2"), 5.0) // tie: incumbent wins
	leader, _ := tbl.leaderOf("exA")
	assert.Equal(t, "exA", leader)
}

func TestClusterLeaderTableCountIncrementsEveryCall(t *testing.T) {
	arena := NewArena(4096)
	tbl := newClusterLeaderTable(17)

	tbl.upsert(arena, []byte("exA"), []byte("exA"), 1.0)
	tbl.upsert(arena, []byte("exA"), []byte("read2"), 1.0)
	tbl.upsert(arena, []byte("exA"), []byte("read3"), 1.0)

	rec := tbl.find("exA")
	assert.NotNil(t, rec)
	assert.Equal(t, 3, rec.count)
}

func TestClusterLeaderTableKeyVsBestReadIDDistinction(t *testing.T) {
	arena := NewArena(4096)
	tbl := newClusterLeaderTable(17)

	tbl.upsert(arena, []byte("exA"), []byte("exA"), 1.0)
	tbl.upsert(arena, []byte("exA"), []byte("read2"), 99.0)

	// Lookups must still resolve by the original initial-exemplar key, even
	// though the reported leader has since changed to read2.
	leader, ok := tbl.leaderOf("exA")
	assert.True(t, ok)
	assert.Equal(t, "read2", leader)

	_, found := tbl.leaderOf("read2")
	assert.False(t, found)
}

func TestClusterLeaderTableFindMissing(t *testing.T) {
	tbl := newClusterLeaderTable(17)
	assert.Nil(t, tbl.find("nope"))
}
