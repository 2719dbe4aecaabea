// Package snapshot serializes and restores the used portion of the heap
// region, preserving embedded block-header links across process restarts.
//
// Saving is a pure read. Loading is destructive, but only after every
// validation has passed: an incompatible or truncated snapshot leaves the
// live region untouched.
//
// When the saved and current base addresses differ and the save was NOT
// taken at a stable address, the loader applies the relocation fallback:
// block-header next links that fall inside the old region's bounds are
// shifted by the base delta. Only header links are relocatable this way;
// pointers embedded in engine payload data carry no type information and
// are left exactly as saved. Production correctness therefore depends on
// the stable-address strategies succeeding; relocation is a best-effort
// net under them.
package snapshot
