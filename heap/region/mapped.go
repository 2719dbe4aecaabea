package region

import (
	"fmt"

	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
	"github.com/chronicleforge/yendors-curse-sub005/internal/mapmem"
)

// Mapped is a backing region obtained from an anonymous mapping requested
// at a fixed preferred address.
type Mapped struct {
	data   []byte
	stable bool
}

// AcquireMapped obtains a mapped region of the given capacity (0 means
// format.DefaultCapacity). The acquisition ladder, in order:
//
//  1. strict fixed-address request at the preferred base;
//  2. hinted request, accepted as stable only if the kernel honored the hint;
//  3. any address the kernel grants, marked not stable (snapshots taken from
//     it are not portable across restarts);
//  4. halve the capacity (not below format.MinCapacity) and run the ladder
//     once more.
//
// If the shrunk ladder also fails the error is ErrAcquire; the caller has
// no fallback heap.
func AcquireMapped(capacity int) (*Mapped, error) {
	if capacity <= 0 {
		capacity = format.DefaultCapacity
	}
	if capacity < format.MinCapacity {
		capacity = format.MinCapacity
	}

	m, firstErr := acquireAt(mapmem.PreferredBase, capacity)
	if m != nil {
		return m, nil
	}

	// Shrink once before declaring failure.
	if shrunk := capacity / 2; shrunk >= format.MinCapacity {
		if m, _ = acquireAt(mapmem.PreferredBase, shrunk); m != nil {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrAcquire, firstErr)
}

func acquireAt(addr uintptr, capacity int) (*Mapped, error) {
	if data, err := mapmem.MapFixed(addr, capacity); err == nil {
		return &Mapped{data: data, stable: true}, nil
	}

	if data, err := mapmem.MapHint(addr, capacity); err == nil {
		// The hint is advisory; the grant counts as stable only when the
		// kernel actually placed us there.
		return &Mapped{data: data, stable: mapmem.Base(data) == addr}, nil
	}

	data, err := mapmem.MapAnywhere(capacity)
	if err != nil {
		return nil, err
	}
	return &Mapped{data: data, stable: false}, nil
}

func (m *Mapped) Bytes() []byte { return m.data }

func (m *Mapped) Base() uintptr { return mapmem.Base(m.data) }

func (m *Mapped) Capacity() int { return len(m.data) }

func (m *Mapped) Stable() bool { return m.stable }

// Release unmaps the region. Idempotent.
func (m *Mapped) Release() error {
	if m.data == nil {
		return nil
	}
	err := mapmem.Unmap(m.data)
	m.data = nil
	m.stable = false
	return err
}

var _ Region = (*Mapped)(nil)
