package heap

import (
	"io"

	"github.com/chronicleforge/yendors-curse-sub005/heap/alloc"
	"github.com/chronicleforge/yendors-curse-sub005/heap/region"
	"github.com/chronicleforge/yendors-curse-sub005/heap/snapshot"
	"github.com/chronicleforge/yendors-curse-sub005/heap/verify"
)

// Strategy selects how the backing region is obtained.
type Strategy int

const (
	// StrategyMapped requests an anonymous mapping at the preferred fixed
	// address, degrading per the acquisition ladder. The default.
	StrategyMapped Strategy = iota

	// StrategyStatic uses the link-time static array: strongest address
	// stability, compile-time capacity.
	StrategyStatic

	// StrategyZone uses plain heap memory: never address-stable, intended
	// for tests and the setup phase.
	StrategyZone
)

// Options configures a Context. The zero value picks the mapped strategy
// at the default capacity.
type Options struct {
	Strategy Strategy

	// Capacity in bytes for the mapped and zone strategies; 0 means the
	// default. The static strategy's capacity is fixed at compile time.
	Capacity int
}

// Context is one allocator instance: a backing region and the block
// allocator over it. All operations of the heap API hang off it; the
// package-level entry points delegate to a process-wide default Context.
type Context struct {
	region region.Region
	alloc  *alloc.Allocator
}

// New acquires a backing region per opts and builds the allocator over it.
// Region acquisition failure is returned as-is; for the engine it is fatal,
// but library callers (tests, tools) decide for themselves.
func New(opts Options) (*Context, error) {
	var (
		r   region.Region
		err error
	)
	switch opts.Strategy {
	case StrategyStatic:
		r, err = region.AcquireStatic()
	case StrategyZone:
		r = region.NewZone(opts.Capacity)
	default:
		r, err = region.AcquireMapped(opts.Capacity)
	}
	if err != nil {
		return nil, err
	}
	return &Context{region: r, alloc: alloc.New(r)}, nil
}

// Allocator returns the underlying block allocator.
func (c *Context) Allocator() *alloc.Allocator { return c.alloc }

// Region returns the backing region.
func (c *Context) Region() region.Region { return c.region }

// Alloc allocates size bytes of zeroed payload.
func (c *Context) Alloc(size int) (alloc.Ref, []byte, error) {
	return c.alloc.Alloc(size)
}

// Realloc resizes an allocation; see alloc.Allocator.Realloc.
func (c *Context) Realloc(ref alloc.Ref, size int) (alloc.Ref, []byte, error) {
	return c.alloc.Realloc(ref, size)
}

// Free returns a block to the free list.
func (c *Context) Free(ref alloc.Ref) error { return c.alloc.Free(ref) }

// Strdup copies s into a fresh allocation with a terminating NUL byte.
func (c *Context) Strdup(s string) (alloc.Ref, error) {
	ref, payload, err := c.alloc.Alloc(len(s) + 1)
	if err != nil {
		return 0, err
	}
	copy(payload, s)
	payload[len(s)] = 0
	return ref, nil
}

// Reset discards all allocations in O(1) while keeping the region (and its
// stable address, if any).
func (c *Context) Reset() { c.alloc.Reset() }

// Stats returns the O(1) statistics view.
func (c *Context) Stats() alloc.Stats { return c.alloc.Stats() }

// CheckIntegrity walks the block chain and the free list, validating
// structural invariants. The returned error names the offending byte
// offset for diagnosis.
func (c *Context) CheckIntegrity() error {
	data := c.alloc.Bytes()
	used := c.alloc.Used()
	if err := verify.Blocks(data, used); err != nil {
		return err
	}
	return verify.FreeList(data, used, c.alloc.FreeHead(), c.alloc.Base())
}

// Save writes a snapshot of the used region to w.
func (c *Context) Save(w io.Writer) error { return snapshot.Save(c.alloc, w) }

// SaveFile writes a snapshot to path.
func (c *Context) SaveFile(path string) error { return snapshot.SaveFile(c.alloc, path) }

// Load restores a snapshot from r; see snapshot.Load for the
// compatibility rules.
func (c *Context) Load(r io.Reader) (*snapshot.LoadReport, error) {
	return snapshot.Load(c.alloc, r)
}

// LoadFile restores a snapshot from path.
func (c *Context) LoadFile(path string) (*snapshot.LoadReport, error) {
	return snapshot.LoadFile(c.alloc, path)
}

// Release returns the backing region to the platform. The context must not
// be used afterwards.
func (c *Context) Release() error { return c.region.Release() }
