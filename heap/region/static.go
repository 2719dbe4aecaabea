package region

import (
	"unsafe"

	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// staticArena is the link-time backing store for the static strategy. Its
// address is fixed when the binary is loaded, which makes it the most
// reliable stable-address source for a given binary and platform.
var staticArena [format.StaticCapacity]byte

var staticInUse bool

// Static is a backing region over the program-lifetime static array.
// Exactly one may be live at a time.
type Static struct {
	released bool
}

// AcquireStatic claims the static region. Fails with ErrStaticInUse if a
// previous acquisition has not been released.
func AcquireStatic() (*Static, error) {
	if staticInUse {
		return nil, ErrStaticInUse
	}
	staticInUse = true
	return &Static{}, nil
}

func (s *Static) Bytes() []byte {
	if s.released {
		return nil
	}
	return staticArena[:]
}

func (s *Static) Base() uintptr {
	if s.released {
		return 0
	}
	return uintptr(unsafe.Pointer(&staticArena[0]))
}

func (s *Static) Capacity() int { return format.StaticCapacity }

func (s *Static) Stable() bool { return !s.released }

// Release gives the static array back for a later acquisition. The bytes
// are not scrubbed; the allocator's zero-on-reuse policy handles content.
func (s *Static) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	staticInUse = false
	return nil
}

var _ Region = (*Static)(nil)
