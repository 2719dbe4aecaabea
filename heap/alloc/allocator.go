package alloc

import (
	"fmt"
	"os"

	"github.com/chronicleforge/yendors-curse-sub005/heap/region"
	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// Runtime flag for allocation tracing - controlled by the YENDOR_LOG_ALLOC
// environment variable.
var logAlloc = os.Getenv("YENDOR_LOG_ALLOC") != ""

func debugf(msg string, args ...any) {
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[alloc] "+msg+"\n", args...)
	}
}

// reuseSlackMax is the best-fit acceptance threshold: a free block whose
// slack over the request is at most this many bytes is taken immediately,
// without scanning the rest of the list for a tighter fit.
const reuseSlackMax = 256

// Ref is the absolute address of an allocation's payload. The zero Ref is
// the null reference. Because it is an address, a Ref embedded in saved
// region bytes stays dereferenceable after restore whenever the region base
// is stable.
type Ref uint64

// Allocator carves fixed-header blocks from a backing region. One allocator
// exclusively owns one region for its lifetime.
type Allocator struct {
	r    region.Region
	data []byte
	base uint64

	// used is the bump cursor: bytes of region carved so far. Blocks are
	// never physically removed, so the block chain in [0, used) is dense.
	used int

	// freeHead is the absolute address of the first free block header.
	// Zero means the free list is empty.
	freeHead uint64

	live     int64
	counters Counters
}

// New creates an allocator over the given region.
func New(r region.Region) *Allocator {
	return &Allocator{
		r:    r,
		data: r.Bytes(),
		base: uint64(r.Base()),
	}
}

// Region returns the backing region. The snapshot codec consults its
// Stable() and Base() for the save header.
func (a *Allocator) Region() region.Region { return a.r }

// Base returns the region base address.
func (a *Allocator) Base() uint64 { return a.base }

// Bytes returns the full backing range. The snapshot codec reads and writes
// through it; no other subsystem may.
func (a *Allocator) Bytes() []byte { return a.data }

// Used returns the bump cursor: the byte length of the carved region.
func (a *Allocator) Used() int { return a.used }

// Alloc returns a reference to a zeroed payload of at least size bytes.
// A size of zero yields the null reference. The free list is searched
// best-fit first; only when nothing fits is a new block carved at the
// cursor. ErrNoSpace when the capacity would be exceeded.
func (a *Allocator) Alloc(size int) (Ref, []byte, error) {
	a.counters.AllocCalls++
	if size == 0 {
		return 0, nil, nil
	}
	if size < 0 {
		return 0, nil, ErrBadSize
	}
	// Reject before the header+align arithmetic can wrap.
	if size > len(a.data) {
		debugf("alloc %d: exceeds region capacity %d", size, len(a.data))
		return 0, nil, ErrNoSpace
	}
	total := format.Align16(format.BlockHeaderSize + size)

	ref, payload, err := a.allocFromFreeList(total)
	if err != nil {
		return 0, nil, err
	}
	if ref != 0 {
		return ref, payload, nil
	}

	// Bump path: carve a fresh block at the cursor.
	if a.used+total > len(a.data) {
		debugf("alloc %d: need %d at cursor %d, capacity %d", size, total, a.used, len(a.data))
		return 0, nil, ErrNoSpace
	}
	off := a.used
	a.used += total

	// The region may hold stale content from before a Reset.
	clear(a.data[off : off+total])
	writeHeader(a.data, off, header{magic: format.BlockMagic, size: uint64(total)})

	a.live++
	return a.refAt(off), a.data[off+format.BlockHeaderSize : off+total], nil
}

// allocFromFreeList scans for the best-fitting free block of at least total
// bytes, accepting early within reuseSlackMax. Returns a zero Ref when no
// block fits. A corrupt header on the list is an integrity violation.
func (a *Allocator) allocFromFreeList(total int) (Ref, []byte, error) {
	need := uint64(total)

	var prev, best, bestPrev, bestSize uint64
	for node := a.freeHead; node != 0; {
		off, err := a.headerOff(node)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: free list node %#x out of region", ErrCorruptHeader, node)
		}
		h := readHeader(a.data, off)
		if h.magic != format.BlockMagic {
			return 0, nil, fmt.Errorf("%w: bad sentinel %#x at offset %#x", ErrCorruptHeader, h.magic, off)
		}
		if !h.free() {
			return 0, nil, fmt.Errorf("%w: allocated block at offset %#x linked as free", ErrCorruptHeader, off)
		}
		if h.size >= need {
			if h.size-need <= reuseSlackMax {
				best, bestPrev = node, prev
				break
			}
			if best == 0 || h.size < bestSize {
				best, bestPrev, bestSize = node, prev, h.size
			}
		}
		prev = node
		node = h.next
	}
	if best == 0 {
		return 0, nil, nil
	}
	return a.reuse(bestPrev, best)
}

// reuse unlinks the chosen free block and hands it out. The successor is
// captured before any mutation of the node being unlinked; taking it after
// would leak the remainder of the free list.
func (a *Allocator) reuse(prevAddr, nodeAddr uint64) (Ref, []byte, error) {
	off, err := a.headerOff(nodeAddr)
	if err != nil {
		return 0, nil, err
	}
	h := readHeader(a.data, off)
	succ := h.next

	if prevAddr == 0 {
		a.freeHead = succ
	} else {
		prevOff, err := a.headerOff(prevAddr)
		if err != nil {
			return 0, nil, err
		}
		writeNext(a.data, prevOff, succ)
	}

	writeFlags(a.data, off, 0)
	writeNext(a.data, off, 0)

	// Zero the ENTIRE payload of the reused block, not just the requested
	// size. The block may be larger than the request, and stale bytes from
	// the previous allocation at this address must never leak through.
	total := int(h.size)
	clear(a.data[off+format.BlockHeaderSize : off+total])

	a.live++
	a.counters.Reuses++
	return a.refAt(off), a.data[off+format.BlockHeaderSize : off+total], nil
}

// Free returns a block to the free list. The null reference is a no-op.
// An invalid reference (out of bounds, misaligned, bad sentinel, already
// free) is reported and NOT acted on; the free list is never linked to a
// header that failed validation.
func (a *Allocator) Free(ref Ref) error {
	if ref == 0 {
		return nil
	}
	a.counters.FreeCalls++

	off, h, err := a.resolve(ref)
	if err != nil {
		debugf("free %#x refused: %v", uint64(ref), err)
		return err
	}
	if h.free() {
		debugf("free %#x refused: already free", uint64(ref))
		return fmt.Errorf("%w: offset %#x", ErrDoubleFree, off)
	}

	writeFlags(a.data, off, format.BlockFlagFree)
	writeNext(a.data, off, a.freeHead)
	a.freeHead = a.base + uint64(off)
	a.live--
	return nil
}

// Realloc resizes an allocation. A null ref behaves as Alloc; a zero size
// behaves as Free and yields the null reference. Otherwise the payload is
// moved: min(old, new) bytes are copied and the old block goes through the
// real free path so it reaches the free list rather than leaking.
func (a *Allocator) Realloc(ref Ref, size int) (Ref, []byte, error) {
	if ref == 0 {
		return a.Alloc(size)
	}
	a.counters.ReallocCalls++
	if size == 0 {
		return 0, nil, a.Free(ref)
	}

	off, h, err := a.resolve(ref)
	if err != nil {
		debugf("realloc %#x refused: %v", uint64(ref), err)
		return 0, nil, err
	}
	if h.free() {
		return 0, nil, fmt.Errorf("%w: offset %#x", ErrBadPointer, off)
	}

	newRef, newPayload, err := a.Alloc(size)
	if err != nil {
		return 0, nil, err
	}
	oldPayload := a.data[off+format.BlockHeaderSize : off+int(h.size)]
	copy(newPayload, oldPayload)
	if err := a.Free(ref); err != nil {
		return 0, nil, err
	}
	return newRef, newPayload, nil
}

// Reset discards all allocations in O(1): cursor and free-list head go to
// zero. The backing bytes are not scrubbed; Alloc's zero-on-reuse policy
// handles content lazily, which is what makes "abandon the current game,
// start a new one at the same stable address" fast.
func (a *Allocator) Reset() {
	a.used = 0
	a.freeHead = 0
	a.live = 0
	a.counters.Resets++
}

// Payload returns the payload bytes of a live allocation.
func (a *Allocator) Payload(ref Ref) ([]byte, error) {
	off, h, err := a.resolve(ref)
	if err != nil {
		return nil, err
	}
	if h.free() {
		return nil, fmt.Errorf("%w: offset %#x", ErrBadPointer, off)
	}
	return a.data[off+format.BlockHeaderSize : off+int(h.size)], nil
}

// FreeHead returns the absolute address of the first free block, zero when
// the free list is empty. Diagnostics only.
func (a *Allocator) FreeHead() uint64 { return a.freeHead }

// refAt converts a header offset to the payload reference handed to callers.
func (a *Allocator) refAt(off int) Ref {
	return Ref(a.base + uint64(off) + format.BlockHeaderSize)
}

// headerOff converts an absolute header address to a validated region
// offset: in bounds of the carved range and block-aligned.
func (a *Allocator) headerOff(addr uint64) (int, error) {
	if addr < a.base {
		return 0, fmt.Errorf("%w: address %#x below region base", ErrBadPointer, addr)
	}
	off := addr - a.base
	if off%format.Alignment != 0 {
		return 0, fmt.Errorf("%w: address %#x misaligned", ErrBadPointer, addr)
	}
	if off+format.BlockHeaderSize > uint64(a.used) {
		return 0, fmt.Errorf("%w: address %#x beyond used range", ErrBadPointer, addr)
	}
	return int(off), nil
}

// resolve maps a payload reference to its validated header offset and
// decoded header. The sentinel is checked here; a mismatch means the
// pointer was never one of ours (or the header was clobbered) and nothing
// may act on it.
func (a *Allocator) resolve(ref Ref) (int, header, error) {
	addr := uint64(ref)
	if addr < format.BlockHeaderSize {
		return 0, header{}, fmt.Errorf("%w: reference %#x", ErrBadPointer, addr)
	}
	off, err := a.headerOff(addr - format.BlockHeaderSize)
	if err != nil {
		return 0, header{}, err
	}
	h := readHeader(a.data, off)
	if h.magic != format.BlockMagic {
		return 0, header{}, fmt.Errorf("%w: bad sentinel %#x at offset %#x", ErrBadPointer, h.magic, off)
	}
	if h.size < format.MinBlockSize || h.size%format.Alignment != 0 ||
		uint64(off)+h.size > uint64(a.used) {
		return 0, header{}, fmt.Errorf("%w: implausible size %d at offset %#x", ErrBadPointer, h.size, off)
	}
	return off, h, nil
}
