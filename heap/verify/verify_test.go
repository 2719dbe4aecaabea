package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// putBlock writes a minimal block header at off and returns the offset of
// the next block.
func putBlock(data []byte, off, total int, free bool, next uint64) int {
	format.PutU32(data, off+format.BlockMagicOffset, format.BlockMagic)
	var flags uint32
	if free {
		flags = format.BlockFlagFree
	}
	format.PutU32(data, off+format.BlockFlagsOffset, flags)
	format.PutU64(data, off+format.BlockSizeOffset, uint64(total))
	format.PutU64(data, off+format.BlockNextOffset, next)
	return off + total
}

func TestBlocksValidChain(t *testing.T) {
	data := make([]byte, 4096)
	off := putBlock(data, 0, 144, false, 0)
	off = putBlock(data, off, 96, true, 0)
	off = putBlock(data, off, 80, false, 0)

	require.NoError(t, Blocks(data, off))
	require.NoError(t, Blocks(data, 0))
}

func TestBlocksBadSentinel(t *testing.T) {
	data := make([]byte, 4096)
	off := putBlock(data, 0, 144, false, 0)
	putBlock(data, off, 96, false, 0)
	format.PutU32(data, 144+format.BlockMagicOffset, 0xFFFF)

	err := Blocks(data, 240)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 144, verr.Offset)
	require.Contains(t, verr.Message, "sentinel")
}

func TestBlocksNonMonotonicAdvance(t *testing.T) {
	data := make([]byte, 4096)
	// Block claims 160 bytes but only 144 are within the used count.
	putBlock(data, 0, 160, false, 0)

	err := Blocks(data, 144)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 0, verr.Offset)
	require.Contains(t, verr.Message, "extends past")
}

func TestBlocksRejectsTinyAndMisaligned(t *testing.T) {
	data := make([]byte, 4096)
	putBlock(data, 0, 16, false, 0)
	require.ErrorContains(t, Blocks(data, 48), "below minimum")

	putBlock(data, 0, 72, false, 0)
	require.ErrorContains(t, Blocks(data, 144), "not 16-byte aligned")

	require.ErrorContains(t, Blocks(data, 8), "used count")
	require.ErrorContains(t, Blocks(data, len(data)+16), "outside region")
}

func TestFreeListValidation(t *testing.T) {
	data := make([]byte, 4096)
	const base = 0x10000

	// Two free blocks: head at 144 pointing back to 0.
	putBlock(data, 0, 144, true, 0)
	used := putBlock(data, 144, 96, true, base)

	require.NoError(t, FreeList(data, used, base+144, base))
	require.NoError(t, FreeList(data, used, 0, base)) // empty list

	// Node outside the used range.
	require.ErrorContains(t, FreeList(data, used, base+4096, base), "outside used range")

	// Node not flagged free.
	putBlock(data, 0, 144, false, 0)
	require.ErrorContains(t, FreeList(data, used, base+144, base), "not marked free")

	// Cycle: head points at itself.
	putBlock(data, 0, 144, true, base)
	require.ErrorContains(t, FreeList(data, used, base, base), "cycle")
}

func TestTakeCensus(t *testing.T) {
	data := make([]byte, 4096)
	off := putBlock(data, 0, 144, false, 0)
	off = putBlock(data, off, 96, true, 0)
	off = putBlock(data, off, 320, true, 0)
	used := putBlock(data, off, 80, false, 0)

	c := TakeCensus(data, used)
	require.Equal(t, 2, c.LiveBlocks)
	require.Equal(t, uint64(224), c.LiveBytes)
	require.Equal(t, 2, c.FreeBlocks)
	require.Equal(t, uint64(416), c.FreeBytes)
	require.Equal(t, uint64(320), c.LargestFree)
}
