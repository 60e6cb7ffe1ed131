package dedup

import "errors"

var (
	// ErrInvalidParams is returned by New when a Params field fails
	// validation.
	ErrInvalidParams = errors.New("dedup: invalid params")

	// ErrOutOfMemory is returned by New when the scratch or result arena
	// could not be allocated at the requested capacity.
	ErrOutOfMemory = errors.New("dedup: out of memory")

	// ErrNotFinalized is reserved for a future stricter mode. It is never
	// returned by the current surface: ProcessRead and GetFinalExemplar
	// both tolerate being called in the "wrong" state and fall back to a
	// benign default instead of erroring.
	ErrNotFinalized = errors.New("dedup: not finalized")
)
