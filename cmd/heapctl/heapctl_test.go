package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronicleforge/yendors-curse-sub005/heap"
)

// writeTestSnapshot builds a small heap with live and freed blocks and
// saves it to a file in a temp dir.
func writeTestSnapshot(t *testing.T) string {
	t.Helper()

	ctx, err := heap.New(heap.Options{Strategy: heap.StrategyZone, Capacity: 1 << 20})
	require.NoError(t, err)
	defer func() { _ = ctx.Release() }()

	a, _, err := ctx.Alloc(100)
	require.NoError(t, err)
	_, _, err = ctx.Alloc(50)
	require.NoError(t, err)
	require.NoError(t, ctx.Free(a))

	path := filepath.Join(t.TempDir(), "test.yheap")
	require.NoError(t, ctx.SaveFile(path))
	return path
}

func TestCommandsOnValidSnapshot(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	path := writeTestSnapshot(t)

	require.NoError(t, runInfo([]string{path}))
	require.NoError(t, runVerify([]string{path}))
	require.NoError(t, runStats([]string{path}))
}

func TestReadSnapshot(t *testing.T) {
	path := writeTestSnapshot(t)

	info, contents, err := readSnapshot(path)
	require.NoError(t, err)
	require.Len(t, contents, int(info.Used))
	require.Equal(t, uint64(1), info.LiveAllocs)
	require.False(t, info.StableBase)
}

func TestVerifyDetectsCorruption(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	path := writeTestSnapshot(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Stomp the first block sentinel, just past the 48-byte header.
	raw[48] = 0
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	require.Error(t, runVerify([]string{path}))
	require.Error(t, runStats([]string{path}))
}

func TestNewCreatesLoadableEmptySnapshot(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	path := filepath.Join(t.TempDir(), "empty.yheap")
	require.NoError(t, runNew([]string{path}))

	info, contents, err := readSnapshot(path)
	require.NoError(t, err)
	require.Zero(t, info.Used)
	require.Zero(t, info.LiveAllocs)
	require.Empty(t, contents)

	require.NoError(t, runVerify([]string{path}))
}

func TestCommandsOnMissingFile(t *testing.T) {
	quiet = true
	defer func() { quiet = false }()

	require.Error(t, runInfo([]string{"does-not-exist.yheap"}))
	require.Error(t, runVerify([]string{"does-not-exist.yheap"}))
}
