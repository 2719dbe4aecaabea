// Package mapmem provides anonymous memory mappings at a caller-chosen
// virtual address. It is the low-level half of the mapped backing-region
// strategy: the region package runs the acquisition ladder, this package
// talks to the platform.
//
// Three primitives, per platform:
//
//   - MapFixed: map exactly at the requested address or fail. Never
//     replaces an existing mapping.
//   - MapHint: pass the address as a hint; the kernel may place the
//     mapping elsewhere. Callers compare the result to the hint.
//   - MapAnywhere: no placement preference.
//
// Platforms without a safe fixed-address request (anything where MAP_FIXED
// would clobber existing mappings) report ErrNoStrictMapping from MapFixed
// and callers fall through to the hinted request.
package mapmem

import (
	"errors"
	"math/bits"
)

// ErrNoStrictMapping indicates the platform cannot request an exact-address
// mapping without risking an existing mapping being replaced.
var ErrNoStrictMapping = errors.New("mapmem: strict fixed-address mapping not supported on this platform")

// PreferredBase is the virtual address the mapped strategy requests. It sits
// well away from typical program, heap, and shared-library placements so the
// strict request has a realistic chance of being honored run after run.
var PreferredBase = defaultPreferredBase()

func defaultPreferredBase() uintptr {
	if bits.UintSize == 64 {
		return uintptr(0x4E59) << 32 // 0x4E59_0000_0000
	}
	return 0x30000000
}

// Base returns the virtual address of the first byte of a mapping.
func Base(data []byte) uintptr {
	if len(data) == 0 {
		return 0
	}
	return sliceBase(data)
}
