package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/chronicleforge/yendors-curse-sub005/heap/alloc"
	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// LoadReport describes what the loader did and what it noticed. Checksum
// and live-count mismatches are warnings, not failures: the allocator's job
// is to get bytes back faithfully; the engine's own state validation is the
// final arbiter of usability.
type LoadReport struct {
	Info Info

	// Relocated is true when the base delta fallback was applied.
	Relocated bool

	// ChecksumOK is false when the stored checksum does not match the
	// restored bytes.
	ChecksumOK bool

	// LiveMatches is false when the header's live allocation count does
	// not match the rescan of the restored chain.
	LiveMatches bool
}

// Load restores a snapshot into the allocator's region.
//
// The live region is mutated only after the header, the full contents, the
// base-address compatibility check, and the structural walk have all
// passed. Decision table, per the saved and current base situation:
//
//   - saved base == current base: direct load, embedded links valid as-is
//     (whether both runs were stable, or a dynamic run landed at the same
//     address as the saved one);
//   - saved stable, current base differs (or unstable): refused with
//     ErrIncompatible — a stable-address save assumes payload pointers are
//     valid as-is, and no relocation can fix those;
//   - saved unstable, base differs: relocation fallback.
func Load(a *alloc.Allocator, r io.Reader) (*LoadReport, error) {
	info, err := ReadInfo(r)
	if err != nil {
		return nil, err
	}

	capacity := len(a.Bytes())
	if info.Used > uint64(capacity) {
		return nil, fmt.Errorf("%w: %d bytes into %d", ErrTooLarge, info.Used, capacity)
	}
	if info.Used%format.Alignment != 0 {
		return nil, fmt.Errorf("%w: used count %d misaligned", ErrCorrupt, info.Used)
	}
	used := int(info.Used)

	// Stage the contents in a scratch buffer. A truncated read, an
	// incompatible base, or a corrupt chain must leave the region as it was.
	contents := make([]byte, used)
	if _, err := io.ReadFull(r, contents); err != nil {
		return nil, fmt.Errorf("snapshot: reading contents: %w", err)
	}

	report := &LoadReport{
		Info:        info,
		ChecksumOK:  format.Checksum(contents) == info.Checksum,
		LiveMatches: true,
	}

	curBase := a.Base()
	switch {
	case info.Base == curBase:
		// Direct load: every embedded link is valid as-is.
	case info.StableBase:
		return nil, fmt.Errorf("%w: saved base %#x, current base %#x",
			ErrIncompatible, info.Base, curBase)
	default:
		if err := relocate(contents, info.Base, curBase); err != nil {
			return nil, err
		}
		report.Relocated = true
	}

	// Commit. From here on failure leaves the allocator empty, not half
	// restored: Adopt resets on a structural violation.
	copy(a.Bytes()[:used], contents)
	if err := a.Adopt(used); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if !report.ChecksumOK {
		fmt.Fprintf(os.Stderr,
			"snapshot: warning: checksum mismatch (stored %#x); engine state validation decides usability\n",
			info.Checksum)
	}
	if got := uint64(a.Stats().LiveAllocs); got != info.LiveAllocs {
		report.LiveMatches = false
		fmt.Fprintf(os.Stderr,
			"snapshot: warning: live allocation count %d disagrees with header %d\n",
			got, info.LiveAllocs)
	}
	return report, nil
}

// relocate walks the staged block chain and rewrites each header's next
// link by the base delta, iff the stored value falls within the old
// region's bounds. Out-of-range values are engine payload or null and are
// left untouched: the allocator has no type information about payload
// contents and must not guess.
func relocate(contents []byte, oldBase, newBase uint64) error {
	delta := newBase - oldBase // wraps intentionally for downward moves
	used := uint64(len(contents))

	for off := 0; off < len(contents); {
		if off+format.BlockHeaderSize > len(contents) {
			return fmt.Errorf("%w: truncated header at offset %#x", ErrCorrupt, off)
		}
		if magic := format.ReadU32(contents, off+format.BlockMagicOffset); magic != format.BlockMagic {
			return fmt.Errorf("%w: bad sentinel %#x at offset %#x", ErrCorrupt, magic, off)
		}
		size := format.ReadU64(contents, off+format.BlockSizeOffset)
		if size < format.MinBlockSize || size%format.Alignment != 0 ||
			uint64(off)+size > used {
			return fmt.Errorf("%w: implausible size %d at offset %#x", ErrCorrupt, size, off)
		}

		next := format.ReadU64(contents, off+format.BlockNextOffset)
		if next >= oldBase && next < oldBase+used {
			format.PutU64(contents, off+format.BlockNextOffset, next+delta)
		}
		off += int(size)
	}
	return nil
}

// LoadFile restores a snapshot from path.
func LoadFile(a *alloc.Allocator, path string) (*LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(a, f)
}
