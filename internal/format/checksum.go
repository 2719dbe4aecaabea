package format

// Checksum computes the snapshot integrity checksum over the used range:
// the XOR of all little-endian u64 words. The used range is always a whole
// number of 16-byte blocks, so it divides evenly into u64 words.
//
// A mismatch on load is reported as a warning, not a failure; the engine's
// own state validation is the final arbiter of usability.
func Checksum(data []byte) uint64 {
	var sum uint64
	for off := 0; off+8 <= len(data); off += 8 {
		sum ^= ReadU64(data, off)
	}
	return sum
}
