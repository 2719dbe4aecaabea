package heap

import (
	"bytes"
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/chronicleforge/yendors-curse-sub005/heap/alloc"
)

// strayPointer fabricates a pointer value that was never handed out by the
// allocator, for testing the tolerant free/realloc paths.
func strayPointer() unsafe.Pointer {
	var sentinel byte
	return unsafe.Pointer(&sentinel)
}

func newZoneContext(t *testing.T, capacity int) *Context {
	t.Helper()
	ctx, err := New(Options{Strategy: StrategyZone, Capacity: capacity})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Release() })
	return ctx
}

func TestContextZoneLifecycle(t *testing.T) {
	ctx := newZoneContext(t, 1<<20)

	ref, payload, err := ctx.Alloc(100)
	require.NoError(t, err)
	require.Len(t, payload, 100)
	require.NotZero(t, ref)

	require.NoError(t, ctx.CheckIntegrity())
	require.NoError(t, ctx.Free(ref))
	require.NoError(t, ctx.CheckIntegrity())

	ctx.Reset()
	require.Zero(t, ctx.Stats().BytesUsed)
}

func TestContextStaticStrategy(t *testing.T) {
	ctx, err := New(Options{Strategy: StrategyStatic})
	require.NoError(t, err)
	defer func() { _ = ctx.Release() }()

	require.True(t, ctx.Region().Stable())

	// The static arena is exclusive while held.
	_, err = New(Options{Strategy: StrategyStatic})
	require.Error(t, err)
}

func TestContextCheckIntegrityReportsOffset(t *testing.T) {
	ctx := newZoneContext(t, 1<<20)
	_, _, err := ctx.Alloc(64)
	require.NoError(t, err)

	// Stomp the block sentinel.
	ctx.Allocator().Bytes()[0] = 0
	require.Error(t, ctx.CheckIntegrity())
}

// Exercises the full session flow: allocate, free, reuse, snapshot,
// restart, restore, and compare the statistics of both lives.
func TestSessionSaveRestoreRoundTrip(t *testing.T) {
	ctx := newZoneContext(t, 1<<20)

	x, px, err := ctx.Alloc(100)
	require.NoError(t, err)
	y, py, err := ctx.Alloc(50)
	require.NoError(t, err)

	for i := range px {
		px[i] = 0xAB
	}
	copy(py, "persist me")

	require.NoError(t, ctx.Free(x))

	// The freed slot is reused and handed back fully zeroed, even though
	// the request is smaller than the hole.
	z, pz, err := ctx.Alloc(40)
	require.NoError(t, err)
	require.Equal(t, x, z)
	for i, b := range pz {
		require.Zerof(t, b, "reused payload dirty at %d", i)
	}

	before := ctx.Stats()
	require.Equal(t, int64(2), before.LiveAllocs)
	require.Equal(t, int64(1), before.Counters.Reuses)

	var snap bytes.Buffer
	require.NoError(t, ctx.Save(&snap))

	// Simulate the next process life on the same region.
	ctx.Reset()
	require.Zero(t, ctx.Stats().BytesUsed)

	report, err := ctx.Load(bytes.NewReader(snap.Bytes()))
	require.NoError(t, err)
	require.False(t, report.Relocated)
	require.True(t, report.ChecksumOK)
	require.True(t, report.LiveMatches)

	after := ctx.Stats()
	require.Equal(t, before.BytesUsed, after.BytesUsed)
	require.Equal(t, before.LiveAllocs, after.LiveAllocs)
	require.NoError(t, ctx.CheckIntegrity())

	// Restored content is intact and addressable at the same reference.
	restored, err := ctx.Allocator().Payload(y)
	require.NoError(t, err)
	require.Equal(t, "persist me", string(restored[:10]))
}

func withTestDefault(t *testing.T) *Context {
	t.Helper()
	ctx := newZoneContext(t, 1<<20)
	prev := SetDefault(ctx)
	t.Cleanup(func() { SetDefault(prev) })
	return ctx
}

func TestABIAllocFreeRealloc(t *testing.T) {
	ctx := withTestDefault(t)

	p := Alloc(100)
	require.NotNil(t, p)
	require.Equal(t, int64(1), ctx.Stats().LiveAllocs)

	// Size 0 still yields a usable distinct allocation.
	q := Alloc(0)
	require.NotNil(t, q)
	require.NotEqual(t, p, q)

	grown := Realloc(p, 200)
	require.NotNil(t, grown)
	require.Equal(t, int64(2), ctx.Stats().LiveAllocs)

	// Realloc with size 0 frees.
	require.Nil(t, Realloc(grown, 0))
	Free(q)
	require.Zero(t, ctx.Stats().LiveAllocs)

	// Nil free is a no-op; a stray pointer is diagnosed but harmless.
	Free(nil)
	Free(strayPointer())
	require.NoError(t, ctx.CheckIntegrity())
}

func TestABIReallocNilAndStray(t *testing.T) {
	ctx := withTestDefault(t)

	p := Realloc(nil, 64)
	require.NotNil(t, p)
	require.Equal(t, int64(1), ctx.Stats().LiveAllocs)

	require.Nil(t, Realloc(strayPointer(), 64))
	require.Equal(t, int64(1), ctx.Stats().LiveAllocs)
}

func TestABIStrdup(t *testing.T) {
	ctx := withTestDefault(t)

	p := Strdup("yendor")
	require.NotNil(t, p)

	payload, err := ctx.Allocator().Payload(alloc.Ref(uintptr(p)))
	require.NoError(t, err)
	require.Equal(t, []byte("yendor\x00"), payload)
}

func TestABIOutOfMemoryIsFatal(t *testing.T) {
	withTestDefault(t)

	exited := false
	osExit = func(int) { exited = true }
	defer func() { osExit = os.Exit }()

	p := Alloc(1 << 21) // larger than the zone
	require.True(t, exited)
	require.Nil(t, p)
}
