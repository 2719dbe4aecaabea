package alloc

import (
	"fmt"

	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// Adopt points the allocator at already-populated region contents, as left
// by a snapshot restore: the cursor is set to used, the block chain is
// walked validating every sentinel and that sizes advance monotonically to
// exactly the cursor, counters are recomputed, and the free list is
// reconstructed from the free flags alone. The persisted next chain is used
// only when it is internally consistent; it is never trusted blindly.
//
// On a structural violation the allocator is left Reset (empty) and the
// error names the offending byte offset.
func (a *Allocator) Adopt(used int) error {
	if used < 0 || used > len(a.data) || used%format.Alignment != 0 {
		return fmt.Errorf("%w: %d (capacity %d)", ErrBadUsed, used, len(a.data))
	}

	var freeOffs []int
	var live int64
	for off := 0; off < used; {
		if off+format.BlockHeaderSize > used {
			a.Reset()
			return fmt.Errorf("%w: truncated header at offset %#x", ErrCorruptHeader, off)
		}
		h := readHeader(a.data, off)
		if h.magic != format.BlockMagic {
			a.Reset()
			return fmt.Errorf("%w: bad sentinel %#x at offset %#x", ErrCorruptHeader, h.magic, off)
		}
		if h.size < format.MinBlockSize || h.size%format.Alignment != 0 ||
			uint64(off)+h.size > uint64(used) {
			a.Reset()
			return fmt.Errorf("%w: implausible size %d at offset %#x", ErrCorruptHeader, h.size, off)
		}
		if h.free() {
			freeOffs = append(freeOffs, off)
		} else {
			live++
		}
		off += int(h.size)
	}

	a.used = used
	a.live = live

	if head, ok := a.recoverChain(freeOffs); ok {
		a.freeHead = head
	} else {
		a.rebuildFreeList(freeOffs)
	}
	return nil
}

// recoverChain accepts the persisted free-list linkage iff it is exactly a
// linear chain over all free blocks: every next points at another free
// block, nothing is referenced twice, there is a single head, and following
// it visits every free block. Keeping a valid chain as-is means a direct
// restore leaves the region bytes identical to the saved image.
func (a *Allocator) recoverChain(freeOffs []int) (uint64, bool) {
	if len(freeOffs) == 0 {
		return 0, true
	}

	isFree := make(map[uint64]bool, len(freeOffs))
	for _, off := range freeOffs {
		isFree[a.base+uint64(off)] = true
	}

	referenced := make(map[uint64]bool, len(freeOffs))
	for _, off := range freeOffs {
		next := readHeader(a.data, off).next
		if next == 0 {
			continue
		}
		if !isFree[next] || referenced[next] {
			return 0, false
		}
		referenced[next] = true
	}

	var head uint64
	for addr := range isFree {
		if !referenced[addr] {
			if head != 0 {
				return 0, false // two heads: broken chain
			}
			head = addr
		}
	}
	if head == 0 {
		return 0, false // every node referenced: cycle
	}

	count := 0
	for node := head; node != 0; {
		count++
		if count > len(freeOffs) {
			return 0, false
		}
		node = readHeader(a.data, int(node-a.base)).next
	}
	if count != len(freeOffs) {
		return 0, false
	}
	return head, true
}

// rebuildFreeList discards whatever linkage the headers carry and relinks
// every free block in scan order.
func (a *Allocator) rebuildFreeList(freeOffs []int) {
	a.freeHead = 0
	for _, off := range freeOffs {
		writeNext(a.data, off, a.freeHead)
		a.freeHead = a.base + uint64(off)
	}
}
