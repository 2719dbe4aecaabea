//go:build unix && !linux

package mapmem

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const anonFlags = unix.MAP_PRIVATE | unix.MAP_ANON

func sliceBase(data []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(data)))
}

// MapFixed is unsupported here: MAP_FIXED on these platforms silently
// replaces existing mappings, which is never acceptable. Callers fall
// through to the hinted request.
func MapFixed(addr uintptr, length int) ([]byte, error) {
	return nil, ErrNoStrictMapping
}

// MapHint maps length bytes, passing addr as a placement hint. The kernel
// is free to ignore the hint; callers must compare Base() to addr.
func MapHint(addr uintptr, length int) ([]byte, error) {
	p, err := unix.MmapPtr(-1, 0, unsafe.Pointer(addr), uintptr(length),
		unix.PROT_READ|unix.PROT_WRITE, anonFlags)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(p), length), nil
}

// MapAnywhere maps length bytes wherever the kernel chooses.
func MapAnywhere(length int) ([]byte, error) {
	return MapHint(0, length)
}

// Unmap releases a mapping returned by one of the Map functions.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unix.MunmapPtr(unsafe.Pointer(unsafe.SliceData(data)), uintptr(len(data)))
}
