package plotfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shabalcore/pkg/poc"
	"shabalcore/pkg/shabal"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.plot")

	body := make([]byte, 2*poc.NonceSize)
	copy(body, poc.GenerateNonce(11, 0, poc.LayoutPoC2))
	copy(body[poc.NonceSize:], poc.GenerateNonce(11, 1, poc.LayoutPoC2))

	header := Header{Account: 11, Start: 0, Count: 2}
	require.NoError(t, Write(path, header, body))

	gotHeader, gotBody, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, header, gotHeader)
	require.Equal(t, body, gotBody)
}

func TestWriteRejectsMismatchedBodyLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.plot")
	err := Write(path, Header{Account: 1, Count: 2}, make([]byte, poc.NonceSize))
	require.Error(t, err)
}

func TestReadHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hdr.plot")
	header := Header{Account: 5, Start: 100, Count: 1}
	require.NoError(t, Write(path, header, make([]byte, poc.NonceSize)))

	got, err := ReadHeader(path)
	require.NoError(t, err)
	require.Equal(t, header, got)
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "nope.plot"))
	require.Error(t, err)
}

func TestCachesSplitsBody(t *testing.T) {
	body := make([]byte, 3*poc.NonceSize)
	body[poc.NonceSize] = 0xAB

	caches := Caches(body)
	require.Len(t, caches, 3)
	require.Equal(t, byte(0xAB), caches[1][0])
}

// TestLinearizeUndoesInterleave checks that the on-disk layout written
// for a GenerateNonces cache is plain ascending nonce order, matching
// what per-nonce generation produces.
func TestLinearizeUndoesInterleave(t *testing.T) {
	const width = shabal.Width4
	const count = uint64(width)

	interleaved := make([]byte, count*poc.NonceSize)
	require.NoError(t, poc.GenerateNonces(width, interleaved, 9, 50, count))

	linear := Linearize(width, interleaved)
	for i := uint64(0); i < count; i++ {
		want := poc.GenerateNonce(9, poc.NonceIndex(50+i), poc.LayoutPoC2)
		require.Equal(t, []byte(want), linear[i*poc.NonceSize:(i+1)*poc.NonceSize], "nonce %d", i)
	}
}
