package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/chronicleforge/yendors-curse-sub005/heap/alloc"
	"github.com/chronicleforge/yendors-curse-sub005/internal/format"
)

// Save writes the snapshot header followed by the raw used range. It never
// mutates allocator state; callers may keep allocating afterwards. The
// caller must not run allocator operations concurrently with Save.
func Save(a *alloc.Allocator, w io.Writer) error {
	used := a.Used()
	data := a.Bytes()[:used]

	hdr := make([]byte, format.SnapHeaderSize)
	encodeHeader(hdr, Info{
		StableBase: a.Region().Stable(),
		Base:       a.Base(),
		Used:       uint64(used),
		LiveAllocs: uint64(a.Stats().LiveAllocs),
		Checksum:   format.Checksum(data),
	})

	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("snapshot: writing header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("snapshot: writing contents: %w", err)
	}
	return nil
}

// SaveFile writes a snapshot to path. A partial write (disk full, crash)
// leaves a file the loader rejects by truncated read or checksum.
func SaveFile(a *alloc.Allocator, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(a, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
