package format

// Alignment utilities. Every block's total size is rounded up to the
// 16-byte allocation granularity before the header is placed, which keeps
// both headers and payloads naturally aligned for any engine object.

// Align16 returns n aligned up to the next 16-byte boundary.
//
// Example:
//
//	Align16(1)  = 16
//	Align16(16) = 16
//	Align16(17) = 32
func Align16(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// Align16U64 returns n aligned up to the next 16-byte boundary.
// uint64 version for snapshot header arithmetic.
func Align16U64(n uint64) uint64 {
	return (n + AlignmentMask) & ^uint64(AlignmentMask)
}
