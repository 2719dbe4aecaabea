// Package format defines the binary layout of the persistent game heap:
// the per-allocation block header, the snapshot file header, alignment
// rules, and the encoding helpers shared by the allocator and the
// snapshot codec.
package format

const (
	// BlockMagic is the sentinel stored in every block header. A header
	// whose magic field does not hold this value is never trusted.
	BlockMagic uint32 = 0x4B4C4259 // "YBLK" little-endian

	// BlockHeaderSize is the fixed size of the header prefixed to every
	// allocation. Headers are always 16-byte aligned, so the payload that
	// follows is too.
	BlockHeaderSize = 32

	// Block header field offsets.
	BlockMagicOffset = 0  // u32 sentinel
	BlockFlagsOffset = 4  // u32 flags
	BlockSizeOffset  = 8  // u64 total size (header + payload, aligned)
	BlockNextOffset  = 16 // u64 absolute address of the next free block
	BlockRsvdOffset  = 24 // u64 reserved, written as zero

	// BlockFlagFree marks a block as a free-list member. The next field is
	// owned by the free list only while this flag is set.
	BlockFlagFree uint32 = 1 << 0

	// Alignment is the allocation granularity. Every total block size is
	// rounded up to this boundary before the header is placed.
	Alignment     = 16
	AlignmentMask = Alignment - 1

	// MinBlockSize is the smallest legal total block size: a header plus
	// one alignment quantum of payload.
	MinBlockSize = BlockHeaderSize + Alignment
)

// Snapshot file layout. The file is the 48-byte header followed by the raw
// used range of the region, all little-endian.
const (
	// SnapHeaderSize is the fixed size of the on-disk snapshot header.
	SnapHeaderSize = 48

	// Snapshot header field offsets.
	SnapSignatureOffset = 0  // 8-byte magic + version tag
	SnapFlagsOffset     = 8  // u64 flags
	SnapBaseOffset      = 16 // u64 original region base address
	SnapUsedOffset      = 24 // u64 used byte count
	SnapAllocsOffset    = 32 // u64 live allocation count
	SnapChecksumOffset  = 40 // u64 XOR checksum over the used range

	// SnapFlagStableBase records that the region the snapshot was taken
	// from was obtained through a stable-address strategy.
	SnapFlagStableBase uint64 = 1 << 0
)

// SnapSignature is the magic + version tag of the snapshot format. The
// trailing byte is the format version; bumping the version changes the tag.
var SnapSignature = []byte("YNDHEAP1")

// Region capacity configuration.
const (
	// DefaultCapacity is the heap ceiling used when the caller does not
	// configure one. The engine's full object graph fits comfortably.
	DefaultCapacity = 32 << 20 // 32 MiB

	// MinCapacity is the smallest region the allocator will run with.
	// The mapped strategy shrinks toward this before declaring failure.
	MinCapacity = 4 << 20 // 4 MiB

	// StaticCapacity is the size of the link-time static region. Fixed at
	// compile time; the static strategy cannot be resized.
	StaticCapacity = 16 << 20 // 16 MiB
)
