package alloc

import "errors"

var (
	// ErrNoSpace indicates the region capacity would be exceeded and no
	// free block fits. The engine has no fallback heap; callers on the
	// non-nullable ABI path treat this as fatal.
	ErrNoSpace = errors.New("alloc: region capacity exceeded")

	// ErrBadSize indicates a negative or otherwise unrepresentable size.
	ErrBadSize = errors.New("alloc: invalid allocation size")

	// ErrBadPointer indicates a reference that is out of bounds,
	// misaligned, or whose header does not carry the magic sentinel.
	// Never acted on, only reported.
	ErrBadPointer = errors.New("alloc: not a live allocation of this heap")

	// ErrDoubleFree indicates a free of a block already on the free list.
	ErrDoubleFree = errors.New("alloc: block is already free")

	// ErrCorruptHeader indicates a header with a mismatched sentinel was
	// found on a trusted path (free-list scan or region adoption). This is
	// an integrity violation, not a caller mistake.
	ErrCorruptHeader = errors.New("alloc: corrupt block header")

	// ErrBadUsed indicates an Adopt cursor that is misaligned or beyond
	// the region capacity.
	ErrBadUsed = errors.New("alloc: invalid used byte count")
)
