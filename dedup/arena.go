package dedup

import (
	gunsafe "github.com/grailbio/base/unsafe"
)

const arenaAlign = 8

// Arena is a bump allocator: regions are carved out of a fixed-size buffer
// by a monotonically increasing high-water mark. There is no way to free
// an individual region; the whole Arena is reclaimed at once, by letting
// it become unreachable. Only byte payloads live in an Arena: the records
// and chain nodes that refer to them are ordinary heap objects, so an
// exemplar's record is not adjacent to its sequences, but its identifier
// and two sequences, copied back to back, are. This avoids the
// fragmentation a general-purpose allocator would accumulate over tens of
// millions of small string allocations.
type Arena struct {
	buf  []byte
	mark int
}

// NewArena creates an Arena backed by a buffer of the given capacity, in
// bytes.
func NewArena(capacity int) *Arena {
	return &Arena{buf: make([]byte, capacity)}
}

// Alloc returns an 8-byte-aligned region of n bytes, or nil if the
// allocation would exceed the arena's capacity.
func (a *Arena) Alloc(n int) []byte {
	if a == nil || n < 0 {
		return nil
	}
	start := (a.mark + arenaAlign - 1) &^ (arenaAlign - 1)
	end := start + n
	if end > len(a.buf) || end < start {
		return nil
	}
	a.mark = end
	return a.buf[start:end:end]
}

// DupBytes copies p into a freshly allocated, null-terminated arena
// region and returns the non-terminated portion as a string backed by
// that region, with no further copy. ok is false if the arena could not
// satisfy the allocation.
func (a *Arena) DupBytes(p []byte) (s string, ok bool) {
	b := a.Alloc(len(p) + 1)
	if b == nil {
		return "", false
	}
	copy(b, p)
	b[len(p)] = 0
	return gunsafe.BytesToString(b[:len(p)]), true
}

// Used returns the number of bytes currently allocated from the arena.
func (a *Arena) Used() int {
	if a == nil {
		return 0
	}
	return a.mark
}

// Cap returns the arena's total capacity, in bytes.
func (a *Arena) Cap() int {
	if a == nil {
		return 0
	}
	return len(a.buf)
}
