//go:build windows

package mapmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func sliceBase(data []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(data)))
}

// MapFixed reserves and commits length bytes exactly at addr. VirtualAlloc
// with a non-nil base fails if the range is unavailable, so this never
// replaces an existing allocation.
func MapFixed(addr uintptr, length int) ([]byte, error) {
	p, err := windows.VirtualAlloc(addr, uintptr(length),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), length), nil
}

// MapHint tries the exact address first, then falls back to letting the
// system choose. Callers must compare Base() to addr.
func MapHint(addr uintptr, length int) ([]byte, error) {
	if addr != 0 {
		if data, err := MapFixed(addr, length); err == nil {
			return data, nil
		}
	}
	return MapAnywhere(length)
}

// MapAnywhere commits length bytes wherever the system chooses.
func MapAnywhere(length int) ([]byte, error) {
	p, err := windows.VirtualAlloc(0, uintptr(length),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), length), nil
}

// Unmap releases a mapping returned by one of the Map functions.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return windows.VirtualFree(uintptr(unsafe.Pointer(unsafe.SliceData(data))), 0, windows.MEM_RELEASE)
}
