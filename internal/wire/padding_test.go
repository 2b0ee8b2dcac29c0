package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tlsconf-go/tlsconf-go/internal/protocol"
)

func TestPaddedClientHelloLen(t *testing.T) {
	for _, tc := range []struct {
		unpadded, padded protocol.ByteCount
	}{
		// Short messages need no padding.
		{0, 0},
		{0xfe, 0xfe},
		{0xff, 0xff},
		// The padding range is padded up to the target.
		{0x100, 0x200},
		{0x123, 0x200},
		{0x1fb, 0x200},
		// Lengths just below the target can't fit a full padding
		// extension, so they overshoot by the minimum extension size.
		{0x1fc, 0x201},
		{0x1fd, 0x202},
		{0x1fe, 0x203},
		{0x1ff, 0x204},
		// Long messages need no padding either.
		{0x200, 0x200},
		{0x201, 0x201},
		{0x1000, 0x1000},
	} {
		require.Equalf(t, tc.padded, PaddedClientHelloLen(tc.unpadded),
			"unpadded length 0x%x", tc.unpadded)
	}
}

func TestPaddedClientHelloLenNeverShrinks(t *testing.T) {
	for l := protocol.ByteCount(0); l < 0x300; l++ {
		require.GreaterOrEqual(t, PaddedClientHelloLen(l), l)
	}
}
