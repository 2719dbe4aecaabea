package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// Info is the decoded snapshot header.
type Info struct {
	// StableBase records whether the region the snapshot was taken from
	// used a stable-address strategy.
	StableBase bool

	// Base is the region base address at save time.
	Base uint64

	// Used is the saved byte count.
	Used uint64

	// LiveAllocs is the live allocation count at save time.
	LiveAllocs uint64

	// Checksum is the XOR checksum over the saved bytes.
	Checksum uint64
}

func encodeHeader(buf []byte, info Info) {
	copy(buf[format.SnapSignatureOffset:], format.SnapSignature)
	var flags uint64
	if info.StableBase {
		flags |= format.SnapFlagStableBase
	}
	format.PutU64(buf, format.SnapFlagsOffset, flags)
	format.PutU64(buf, format.SnapBaseOffset, info.Base)
	format.PutU64(buf, format.SnapUsedOffset, info.Used)
	format.PutU64(buf, format.SnapAllocsOffset, info.LiveAllocs)
	format.PutU64(buf, format.SnapChecksumOffset, info.Checksum)
}

func decodeHeader(buf []byte) (Info, error) {
	if !bytes.Equal(buf[format.SnapSignatureOffset:format.SnapSignatureOffset+8], format.SnapSignature) {
		return Info{}, fmt.Errorf("%w: got %q", ErrBadSignature,
			buf[format.SnapSignatureOffset:format.SnapSignatureOffset+8])
	}
	flags := format.ReadU64(buf, format.SnapFlagsOffset)
	return Info{
		StableBase: flags&format.SnapFlagStableBase != 0,
		Base:       format.ReadU64(buf, format.SnapBaseOffset),
		Used:       format.ReadU64(buf, format.SnapUsedOffset),
		LiveAllocs: format.ReadU64(buf, format.SnapAllocsOffset),
		Checksum:   format.ReadU64(buf, format.SnapChecksumOffset),
	}, nil
}

// Checksum computes the checksum of snapshot contents, for comparison
// against Info.Checksum.
func Checksum(contents []byte) uint64 { return format.Checksum(contents) }

// ReadInfo decodes just the snapshot header, without the contents.
func ReadInfo(r io.Reader) (Info, error) {
	buf := make([]byte, format.SnapHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Info{}, fmt.Errorf("snapshot: reading header: %w", err)
	}
	return decodeHeader(buf)
}

// ReadInfoFile decodes the header of a snapshot file.
func ReadInfoFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	return ReadInfo(f)
}
