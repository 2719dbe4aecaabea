package region

import "errors"

var (
	// ErrAcquire indicates no backing region of even the minimum viable
	// capacity could be obtained. The engine cannot run without a heap;
	// callers treat this as fatal.
	ErrAcquire = errors.New("region: unable to acquire a backing region")

	// ErrStaticInUse indicates the static region is already acquired.
	// There is exactly one static array per process.
	ErrStaticInUse = errors.New("region: static region already in use")

	// ErrReleased indicates use of a region after Release.
	ErrReleased = errors.New("region: region has been released")
)

// Region is a single contiguous byte range owned exclusively by one
// allocator for its lifetime. Base is stable within one process execution;
// Stable reports whether it is expected to repeat across executions.
type Region interface {
	// Bytes returns the full backing range. Nil after Release.
	Bytes() []byte

	// Base returns the virtual address of the first byte. Zero after Release.
	Base() uintptr

	// Capacity returns the total byte capacity.
	Capacity() int

	// Stable reports whether the base address is expected to be identical
	// across independent process executions.
	Stable() bool

	// Release returns the region to the platform. The region must not be
	// used afterwards.
	Release() error
}
