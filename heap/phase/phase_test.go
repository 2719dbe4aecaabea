package phase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronicleforge/yendors-curse-sub005/heap/alloc"
	"github.com/chronicleforge/yendors-curse-sub005/heap/region"
)

func newMain(t *testing.T) *alloc.Allocator {
	t.Helper()
	z := region.NewZone(1 << 20)
	t.Cleanup(func() { _ = z.Release() })
	return alloc.New(z)
}

func TestSetupAllocationsDiscardedOnTransition(t *testing.T) {
	main := newMain(t)
	l := NewLifecycle(main, 1<<20)
	require.Equal(t, Setup, l.Phase())

	// Setup-phase allocations land in the zone, not the main region.
	_, _, err := l.Current().Alloc(256)
	require.NoError(t, err)
	require.Zero(t, main.Used())

	// Something persistent can still be placed during setup.
	_, _, err = l.Main().Alloc(64)
	require.NoError(t, err)

	require.NoError(t, l.EnterSession())
	require.Equal(t, Session, l.Phase())
	require.Same(t, main, l.Current())

	// The main allocator kept its state across the transition.
	require.Equal(t, int64(1), main.Stats().LiveAllocs)
}

func TestEnterSessionTwice(t *testing.T) {
	l := NewLifecycle(newMain(t), 0)
	require.NoError(t, l.EnterSession())
	require.ErrorIs(t, l.EnterSession(), ErrAlreadyInSession)
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "setup", Setup.String())
	require.Equal(t, "session", Session.String())
	require.Equal(t, "unknown", Phase(9).String())
}
