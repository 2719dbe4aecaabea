// Package alloc implements the block allocator over a backing region.
//
// Every allocation is prefixed by a fixed 32-byte header carrying a magic
// sentinel, a free flag, the total (aligned) block size, and a free-list
// link. Blocks are carved by advancing a bump cursor; freed blocks go onto
// a singly linked free list and are reused best-fit before the cursor
// advances again. Freed blocks are never physically removed; they persist
// in the region until reused or until Reset.
//
// Reused and freshly carved payloads are always zeroed in full. Stale bytes
// from a previous, larger allocation at the same address must never leak
// into a new allocation.
//
// NOT goroutine-safe. The engine this allocator serves runs its
// memory-touching logic on a single logical thread; serialization of any
// concurrent callers is the caller's responsibility.
package alloc
