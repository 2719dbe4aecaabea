// Package verify provides structural validation for the heap's block chain.
// It is used by the snapshot loader, by heapctl, and heavily in tests to
// check that allocator invariants hold after any sequence of operations.
package verify
