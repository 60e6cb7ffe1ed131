package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDjb2Deterministic(t *testing.T) {
	assert.Equal(t, djb2([]byte("abc")), djb2([]byte("abc")))
	assert.NotEqual(t, djb2([]byte("abc")), djb2([]byte("abd")))
}

func TestReadExemplarMapPutGet(t *testing.T) {
	arena := NewArena(4096)
	m := newReadExemplarMap(17)

	ok := m.put(arena, []byte("read1"), []byte("exemplarA"))
	assert.True(t, ok)

	got, found := m.get("read1")
	assert.True(t, found)
	assert.Equal(t, "exemplarA", got)
}

func TestReadExemplarMapGetMissing(t *testing.T) {
	m := newReadExemplarMap(17)
	_, found := m.get("neverput")
	assert.False(t, found)
}

func TestReadExemplarMapByteExactLookup(t *testing.T) {
	arena := NewArena(4096)
	m := newReadExemplarMap(17)
	m.put(arena, []byte("read1"), []byte("exA"))
	m.put(arena, []byte("read2"), []byte("exB"))

	got1, _ := m.get("read1")
	got2, _ := m.get("read2")
	assert.Equal(t, "exA", got1)
	assert.Equal(t, "exB", got2)
}

func TestReadExemplarMapPutOOMReturnsFalse(t *testing.T) {
	arena := NewArena(2)
	ok := m2put(arena)
	assert.False(t, ok)
}

func m2put(arena *Arena) bool {
	m := newReadExemplarMap(17)
	return m.put(arena, []byte("read1"), []byte("exemplarA"))
}
