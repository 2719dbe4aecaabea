package region

import (
	"unsafe"

	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// Zone is a heap-backed region supporting O(1) bulk destruction: Release
// drops the only reference and everything allocated inside it is gone in
// one step. Zones are never address-stable; they serve the setup-phase
// lifecycle, not persistence.
type Zone struct {
	data []byte
}

// NewZone creates a zone of the given capacity (0 means
// format.DefaultCapacity).
func NewZone(capacity int) *Zone {
	if capacity <= 0 {
		capacity = format.DefaultCapacity
	}
	return &Zone{data: make([]byte, capacity)}
}

func (z *Zone) Bytes() []byte { return z.data }

func (z *Zone) Base() uintptr {
	if len(z.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(z.data)))
}

func (z *Zone) Capacity() int { return len(z.data) }

func (z *Zone) Stable() bool { return false }

// Release destroys the zone in O(1). Every allocation inside it becomes
// invalid at once.
func (z *Zone) Release() error {
	z.data = nil
	return nil
}

var _ Region = (*Zone)(nil)
