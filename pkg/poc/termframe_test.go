package poc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedFrameEncodesAccountAndNonceBigEndian(t *testing.T) {
	seed := seedFrame(0x0102030405060708, 0x1112131415161718)

	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, seed[0:8])
	require.Equal(t, []byte{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18}, seed[8:16])
}

func TestSeedFrameDeterministic(t *testing.T) {
	a := seedFrame(42, 7)
	b := seedFrame(42, 7)
	require.Equal(t, a, b)
}

func TestSeedFrameVariesWithAccountAndNonce(t *testing.T) {
	base := seedFrame(1, 1)
	require.NotEqual(t, base, seedFrame(2, 1))
	require.NotEqual(t, base, seedFrame(1, 2))
}
