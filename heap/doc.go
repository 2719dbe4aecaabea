// Package heap ties the backing region, block allocator, snapshot codec,
// and diagnostics into one allocator context, and exposes the free-function
// entry points the gameplay engine calls in place of its own heap routines.
//
// All state lives in an explicit Context. A process-wide default Context is
// constructed lazily on first use for callers that expect malloc-shaped
// free functions (Alloc, Realloc, Free, Strdup). On those entry points out
// of memory is fatal: the engine has no fallback heap and does not check
// for null.
//
// NOT goroutine-safe; the engine runs its memory-touching logic on a
// single logical thread and snapshot operations must not race allocator
// calls.
package heap
