package snapshot

import "errors"

var (
	// ErrBadSignature indicates the file does not start with the snapshot
	// magic tag, or carries an unknown format version.
	ErrBadSignature = errors.New("snapshot: unrecognized signature or version")

	// ErrIncompatible indicates the snapshot was taken at a stable base
	// address this process did not obtain. Loading would leave every
	// embedded pointer invalid, so the load is refused outright and the
	// live region is not mutated.
	ErrIncompatible = errors.New("snapshot: saved at a stable address this process does not have")

	// ErrTooLarge indicates the snapshot's used range exceeds the current
	// region's capacity.
	ErrTooLarge = errors.New("snapshot: contents exceed region capacity")

	// ErrCorrupt indicates the snapshot's block chain failed structural
	// validation.
	ErrCorrupt = errors.New("snapshot: corrupt block chain")
)
