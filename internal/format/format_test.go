package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlign16(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 0},
		{1, 16},
		{15, 16},
		{16, 16},
		{17, 32},
		{32, 32},
		{100, 112},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Align16(c.in), "Align16(%d)", c.in)
		require.Equal(t, uint64(c.want), Align16U64(uint64(c.in)), "Align16U64(%d)", c.in)
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	buf := make([]byte, 16)

	PutU32(buf, 0, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), ReadU32(buf, 0))

	PutU64(buf, 8, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), ReadU64(buf, 8))

	// Little-endian byte order on disk.
	require.Equal(t, byte(0xEF), buf[0])
	require.Equal(t, byte(0x08), buf[8])
}

func TestChecksum(t *testing.T) {
	buf := make([]byte, 32)
	require.Equal(t, uint64(0), Checksum(buf))

	PutU64(buf, 0, 0xAAAA)
	PutU64(buf, 16, 0x5555)
	require.Equal(t, uint64(0xAAAA^0x5555), Checksum(buf))

	// Flipping any bit changes the sum.
	before := Checksum(buf)
	buf[3] ^= 0x40
	require.NotEqual(t, before, Checksum(buf))
}

func TestHeaderLayoutConstants(t *testing.T) {
	// The header must stay one alignment-multiple so payloads remain aligned.
	require.Equal(t, 0, BlockHeaderSize%Alignment)
	require.Equal(t, SnapHeaderSize, SnapChecksumOffset+8)
	require.Len(t, SnapSignature, 8)
}
