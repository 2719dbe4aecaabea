package heap

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/chronicleforge/yendors-curse-sub005/heap/alloc"
)

var (
	defaultCtx *Context

	// Test hook.
	osExit = os.Exit
)

// Default returns the process-wide context, acquiring the backing region on
// first use. Acquisition failure is fatal here: the engine entry points
// below have no way to report it.
func Default() *Context {
	if defaultCtx == nil {
		ctx, err := New(Options{})
		if err != nil {
			fatalf("acquire region: %v", err)
			return nil
		}
		defaultCtx = ctx
	}
	return defaultCtx
}

// SetDefault installs ctx as the process-wide context and returns the
// previous one, if any. Intended for startup code that wants a non-default
// strategy behind the free-function entry points.
func SetDefault(ctx *Context) *Context {
	prev := defaultCtx
	defaultCtx = ctx
	return prev
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "heap: fatal: "+format+"\n", args...)
	osExit(1)
}

// Alloc returns a pointer to size bytes of zeroed memory. It never returns
// nil: callers do not check for null, so out of memory terminates the
// process with a diagnostic on stderr. A size of 0 is treated as 1 to keep
// the returned pointer distinct and usable.
func Alloc(size int) unsafe.Pointer {
	if size <= 0 {
		size = 1
	}
	_, payload, err := Default().Alloc(size)
	if err != nil {
		fatalf("alloc %d bytes: %v", size, err)
		return nil
	}
	return unsafe.Pointer(&payload[0])
}

// Realloc resizes the allocation at p, preserving min(old, new) bytes.
// A nil p behaves like Alloc; a size of 0 behaves like Free and returns
// nil. Out of memory is fatal, like Alloc. A pointer that was never
// returned by Alloc is diagnosed on stderr and ignored, returning nil.
func Realloc(p unsafe.Pointer, size int) unsafe.Pointer {
	if p == nil {
		return Alloc(size)
	}
	if size <= 0 {
		Free(p)
		return nil
	}
	_, payload, err := Default().Realloc(alloc.Ref(uintptr(p)), size)
	if err != nil {
		if errors.Is(err, alloc.ErrNoSpace) {
			fatalf("realloc %d bytes: %v", size, err)
		}
		fmt.Fprintf(os.Stderr, "heap: realloc %p ignored: %v\n", p, err)
		return nil
	}
	return unsafe.Pointer(&payload[0])
}

// Free returns the allocation at p to the free list. A nil p is a no-op.
// An invalid or doubly-freed pointer is diagnosed on stderr and otherwise
// ignored; the heap stays intact.
func Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	if err := Default().Free(alloc.Ref(uintptr(p))); err != nil {
		fmt.Fprintf(os.Stderr, "heap: free %p ignored: %v\n", p, err)
	}
}

// Strdup copies s into a fresh allocation with a terminating NUL byte and
// returns a pointer to it. Like Alloc, it never returns nil.
func Strdup(s string) unsafe.Pointer {
	ctx := Default()
	ref, err := ctx.Strdup(s)
	if err != nil {
		fatalf("strdup %d bytes: %v", len(s)+1, err)
		return nil
	}
	payload, err := ctx.Allocator().Payload(ref)
	if err != nil {
		fatalf("strdup: %v", err)
		return nil
	}
	return unsafe.Pointer(&payload[0])
}
