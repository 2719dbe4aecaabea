package verify

import (
	"fmt"

	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// ValidationError reports a structural violation with the byte offset where
// it was found. Violations are reported for diagnosis, never acted on.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Blocks walks the block chain from the start of the region to used,
// validating each header's sentinel, size alignment, and minimum size, and
// that offsets advance monotonically to exactly the used count. Returns the
// first violation, or nil.
func Blocks(data []byte, used int) error {
	if used < 0 || used > len(data) {
		return &ValidationError{
			Type:    "Blocks",
			Message: fmt.Sprintf("used count %d outside region of %d bytes", used, len(data)),
			Offset:  -1,
		}
	}
	if used%format.Alignment != 0 {
		return &ValidationError{
			Type:    "Blocks",
			Message: fmt.Sprintf("used count %d not %d-byte aligned", used, format.Alignment),
			Offset:  -1,
		}
	}

	for off := 0; off < used; {
		if off+format.BlockHeaderSize > used {
			return &ValidationError{
				Type:    "Blocks",
				Message: fmt.Sprintf("truncated header: %d bytes remain", used-off),
				Offset:  off,
			}
		}
		magic := format.ReadU32(data, off+format.BlockMagicOffset)
		if magic != format.BlockMagic {
			return &ValidationError{
				Type:    "Blocks",
				Message: fmt.Sprintf("bad sentinel: got 0x%08X, expected 0x%08X", magic, format.BlockMagic),
				Offset:  off,
			}
		}
		size := format.ReadU64(data, off+format.BlockSizeOffset)
		if size < format.MinBlockSize {
			return &ValidationError{
				Type:    "Blocks",
				Message: fmt.Sprintf("block size %d below minimum %d", size, format.MinBlockSize),
				Offset:  off,
			}
		}
		if size%format.Alignment != 0 {
			return &ValidationError{
				Type:    "Blocks",
				Message: fmt.Sprintf("block size %d not %d-byte aligned", size, format.Alignment),
				Offset:  off,
			}
		}
		if uint64(off)+size > uint64(used) {
			return &ValidationError{
				Type:    "Blocks",
				Message: fmt.Sprintf("block of %d bytes extends past used count %d", size, used),
				Offset:  off,
			}
		}
		off += int(size)
	}
	return nil
}

// FreeList validates the free list rooted at head (an absolute address over
// base): every node must lie inside the used range, be block-aligned, carry
// the sentinel and the free flag, and the chain must terminate without
// revisiting a node.
func FreeList(data []byte, used int, head, base uint64) error {
	seen := make(map[uint64]bool)
	for node := head; node != 0; {
		if node < base || node-base+format.BlockHeaderSize > uint64(used) {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("node address 0x%X outside used range", node),
				Offset:  -1,
			}
		}
		off := int(node - base)
		if off%format.Alignment != 0 {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("node address 0x%X misaligned", node),
				Offset:  off,
			}
		}
		if seen[node] {
			return &ValidationError{
				Type:    "FreeList",
				Message: "cycle: node revisited",
				Offset:  off,
			}
		}
		seen[node] = true

		if magic := format.ReadU32(data, off+format.BlockMagicOffset); magic != format.BlockMagic {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("bad sentinel: got 0x%08X", magic),
				Offset:  off,
			}
		}
		if flags := format.ReadU32(data, off+format.BlockFlagsOffset); flags&format.BlockFlagFree == 0 {
			return &ValidationError{
				Type:    "FreeList",
				Message: "node not marked free",
				Offset:  off,
			}
		}
		node = format.ReadU64(data, off+format.BlockNextOffset)
	}
	return nil
}

// Census summarizes the block chain: counts and byte totals by state.
// Callers should run Blocks first; Census assumes a structurally valid
// chain.
type Census struct {
	LiveBlocks  int
	LiveBytes   uint64
	FreeBlocks  int
	FreeBytes   uint64
	LargestFree uint64
}

// TakeCensus walks the chain and tallies block usage.
func TakeCensus(data []byte, used int) Census {
	var c Census
	for off := 0; off < used; {
		size := format.ReadU64(data, off+format.BlockSizeOffset)
		if size == 0 {
			break // defensive: avoid spinning on zeroed bytes
		}
		flags := format.ReadU32(data, off+format.BlockFlagsOffset)
		if flags&format.BlockFlagFree != 0 {
			c.FreeBlocks++
			c.FreeBytes += size
			if size > c.LargestFree {
				c.LargestFree = size
			}
		} else {
			c.LiveBlocks++
			c.LiveBytes += size
		}
		off += int(size)
	}
	return c
}
