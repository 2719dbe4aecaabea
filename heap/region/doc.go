// Package region obtains the single contiguous backing region that holds
// the entire game heap.
//
// Three strategies, trading stability guarantee against flexibility:
//
//   - Mapped: an anonymous mapping requested at a fixed preferred address.
//     Stable across runs when the kernel honors the request; degrades to an
//     arbitrary address (marked not stable) rather than failing.
//   - Static: a capacity-sized array with program-lifetime storage. Its
//     address is fixed at link/load time for a given binary and platform,
//     the strongest stability guarantee, but the capacity cannot change.
//   - Zone: a plain heap-backed region supporting O(1) bulk destruction.
//     Never address-stable; it exists for the setup-phase lifecycle, not
//     for persistence.
//
// Whether a snapshot taken from a region can be restored without pointer
// relocation depends entirely on Stable(); see the snapshot package.
package region
