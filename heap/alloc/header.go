package alloc

import (
	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// header is the decoded form of the 32-byte block header. The on-region
// encoding is little-endian; see internal/format for the layout.
type header struct {
	magic uint32
	flags uint32
	size  uint64 // total block size: header + payload, 16-byte aligned
	next  uint64 // absolute address of the next free block; free-list owned
}

func (h header) free() bool { return h.flags&format.BlockFlagFree != 0 }

func readHeader(data []byte, off int) header {
	return header{
		magic: format.ReadU32(data, off+format.BlockMagicOffset),
		flags: format.ReadU32(data, off+format.BlockFlagsOffset),
		size:  format.ReadU64(data, off+format.BlockSizeOffset),
		next:  format.ReadU64(data, off+format.BlockNextOffset),
	}
}

func writeHeader(data []byte, off int, h header) {
	format.PutU32(data, off+format.BlockMagicOffset, h.magic)
	format.PutU32(data, off+format.BlockFlagsOffset, h.flags)
	format.PutU64(data, off+format.BlockSizeOffset, h.size)
	format.PutU64(data, off+format.BlockNextOffset, h.next)
	format.PutU64(data, off+format.BlockRsvdOffset, 0)
}

func writeFlags(data []byte, off int, flags uint32) {
	format.PutU32(data, off+format.BlockFlagsOffset, flags)
}

func writeNext(data []byte, off int, next uint64) {
	format.PutU64(data, off+format.BlockNextOffset, next)
}
