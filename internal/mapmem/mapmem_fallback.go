//go:build !unix && !windows

package mapmem

import "unsafe"

func sliceBase(data []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(data)))
}

// MapFixed is unsupported without a virtual memory interface.
func MapFixed(addr uintptr, length int) ([]byte, error) {
	return nil, ErrNoStrictMapping
}

// MapHint ignores the hint and allocates from the Go heap. The resulting
// region is never address-stable across runs.
func MapHint(addr uintptr, length int) ([]byte, error) {
	return make([]byte, length), nil
}

// MapAnywhere allocates from the Go heap.
func MapAnywhere(length int) ([]byte, error) {
	return make([]byte, length), nil
}

// Unmap is a no-op; the Go heap reclaims the slice.
func Unmap(data []byte) error {
	return nil
}
