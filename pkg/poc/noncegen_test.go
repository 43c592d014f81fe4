package poc

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"shabalcore/pkg/shabal"
)

func TestGenerateNonceDeterministic(t *testing.T) {
	c1 := GenerateNonce(1234, 5, LayoutPoC1)
	c2 := GenerateNonce(1234, 5, LayoutPoC1)
	require.Equal(t, c1, c2)
}

func TestGenerateNonceDependsOnAccountAndIndex(t *testing.T) {
	base := GenerateNonce(1, 0, LayoutPoC1)
	otherAccount := GenerateNonce(2, 0, LayoutPoC1)
	otherNonce := GenerateNonce(1, 1, LayoutPoC1)

	require.NotEqual(t, base, otherAccount, "changing the account id must change the cache")
	require.NotEqual(t, base, otherNonce, "changing the nonce index must change the cache")
}

func TestGenerateNonceFullSize(t *testing.T) {
	c := GenerateNonce(42, 42, LayoutPoC1)
	require.Len(t, c, NonceSize)
}

func TestToPoC2IsInvolution(t *testing.T) {
	original := GenerateNonce(7, 3, LayoutPoC1)

	roundTrip := make(Cache, len(original))
	copy(roundTrip, original)
	roundTrip.ToPoC2()
	roundTrip.ToPoC2()

	require.Equal(t, original, roundTrip, "applying the PoC2 mirror swap twice must restore PoC1 layout")
}

func TestToPoC2PreservesFirstHashOfEveryScoop(t *testing.T) {
	c := GenerateNonce(9, 1, LayoutPoC1)
	before := make(Cache, len(c))
	copy(before, c)

	c.ToPoC2()

	for s := 0; s < ScoopsPerNonce; s++ {
		require.Equal(t, before.Scoop(s)[:HashSize], c.Scoop(s)[:HashSize],
			"the first hash of every scoop is untouched by the PoC2 conversion")
	}
}

func TestToPoC2SwapsMirrorSecondHashes(t *testing.T) {
	c := GenerateNonce(9, 1, LayoutPoC1)
	before := make(Cache, len(c))
	copy(before, c)

	c.ToPoC2()

	mirror := ScoopsPerNonce - 1
	require.Equal(t, before.Scoop(0)[HashSize:], c.Scoop(mirror)[HashSize:])
	require.Equal(t, before.Scoop(mirror)[HashSize:], c.Scoop(0)[HashSize:])
}

func TestBatchInterleaveRoundTrips(t *testing.T) {
	const width = 4
	caches := make([]Cache, width)
	for lane := range caches {
		caches[lane] = GenerateNonce(100, NonceIndex(lane), LayoutPoC1)
	}

	batch := NewBatchCache(width)
	for lane, c := range caches {
		batch.Interleave(lane, c)
	}

	for lane, want := range caches {
		got := batch.Deinterleave(lane)
		require.Equal(t, want, got, "lane %d must round-trip through interleave/deinterleave", lane)
	}
}

func TestGenerateNonceBatchRejectsOverflowingCount(t *testing.T) {
	_, err := GenerateNonceBatch(1, 0, 5, 4, LayoutPoC1)
	require.Error(t, err)
}

func TestGenerateNonceBatchMatchesIndividualGeneration(t *testing.T) {
	const width = 4
	batch, err := GenerateNonceBatch(55, 10, width, width, LayoutPoC2)
	require.NoError(t, err)

	for lane := 0; lane < width; lane++ {
		want := GenerateNonce(55, NonceIndex(10+lane), LayoutPoC2)
		got := batch.Deinterleave(lane)
		require.Equal(t, want, got)
	}
}

// TestGenerateNoncesFreeFunctionMatchesBatchBuilder exercises the raw
// external interface form (flat interleaved cache, explicit lane
// width) against the typed GenerateNonceBatch built for the same ranges.
func TestGenerateNoncesFreeFunctionMatchesBatchBuilder(t *testing.T) {
	const width = 4
	const count = uint64(2 * width)

	cache := make([]byte, count*NonceSize)
	require.NoError(t, GenerateNonces(shabal.Width4, cache, 88, 0, count))

	batch, err := GenerateNonceBatch(88, 0, width, width, LayoutPoC2)
	require.NoError(t, err)
	require.Equal(t, batch.Data, cache[:width*NonceSize])

	batch2, err := GenerateNonceBatch(88, width, width, width, LayoutPoC2)
	require.NoError(t, err)
	require.Equal(t, batch2.Data, cache[width*NonceSize:])
}

func TestGenerateNoncesRejectsNonMultipleCount(t *testing.T) {
	cache := make([]byte, 3*NonceSize)
	err := GenerateNonces(shabal.Width4, cache, 1, 0, 3)
	require.Error(t, err)
}

func TestGenerateNoncesRejectsMismatchedCacheLength(t *testing.T) {
	cache := make([]byte, NonceSize)
	err := GenerateNonces(shabal.Width4, cache, 1, 0, 4)
	require.Error(t, err)
}

func mustHashHex(t *testing.T, s string) []byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, HashSize)
	return raw
}

// TestGenerateNonceSeedScenarioSingle is the "id 0, nonce 0" seed
// scenario: the SHA-256 of the full 256 KiB nonce, and its first and
// last chain hashes, cross-referenced against an independent
// implementation of the reference chaining (sphlib-semantics Shabal,
// mdcct-semantics nonce loop).
func TestGenerateNonceSeedScenarioSingle(t *testing.T) {
	c := GenerateNonce(0, 0, LayoutPoC1)
	require.Len(t, c, NonceSize)

	digest := sha256.Sum256(c)
	require.Equal(t,
		"724afcbb3e513db43e695ea5bfddf12466ca32942bc3c7c75a426c2a47f40037",
		hex.EncodeToString(digest[:]))

	require.Equal(t,
		mustHashHex(t, "bf8cea22b4c59bb0e2083ab4625f471b6a9c4d6da155ed8e924b208955174260"),
		c.Hash(0))
	require.Equal(t,
		mustHashHex(t, "444ca6d9eb4bc4cb79e7e956aba206bf6dd549774be4d3a0c606e0d3ee69258f"),
		c.Hash(HashesPerNonce-1))

	p2 := GenerateNonce(0, 0, LayoutPoC2)
	digest2 := sha256.Sum256(p2)
	require.Equal(t,
		"167da248c3f9afda52c3984ae0b82b7fdf944cbdafd782b285f6d1f56f957063",
		hex.EncodeToString(digest2[:]))
}

// TestGenerateNonceSeedScenarioDeadlineFixture: numeric_id =
// 10_282_355_196_851_764_065, nonces 0..3, scoop 0, gensig all zeros.
// The per-nonce deadlines and the winning (deadline, offset) pair are
// golden values cross-referenced against the independent reference
// implementation.
func TestGenerateNonceSeedScenarioDeadlineFixture(t *testing.T) {
	const scenarioAccount = AccountID(10_282_355_196_851_764_065)
	const scenarioScoop = 0
	var gensig [GensigSize]byte // 32 zero bytes

	wantDeadlines := []Deadline{
		5_551_467_195_338_784_478,
		12_664_678_067_436_200_544,
		6_814_704_534_558_743_153,
		4_543_509_874_633_269_455,
	}

	caches := make([]Cache, len(wantDeadlines))
	for i := range caches {
		caches[i] = GenerateNonce(scenarioAccount, NonceIndex(i), LayoutPoC2)
		u1, u2 := caches[i].ScoopPair(scenarioScoop)
		require.Equal(t, wantDeadlines[i], ScoopDeadline(gensig, u1, u2), "nonce %d", i)
	}

	best := FindBestDeadlineCaches(caches, scenarioScoop, gensig)
	require.True(t, best.Found())
	require.Equal(t, Deadline(4_543_509_874_633_269_455), best.Deadline)
	require.Equal(t, uint64(3), best.Offset)
}

// TestXORMaskInvolution: the final whole-nonce digest XOR is exactly
// invertible. The chain's first-written hash, at position 8191, is the
// seed hash (Shabal-256 of the bare 16-byte seed tail), so the mask can
// be recovered from the emitted cache; stripping it must expose a
// pre-whitening buffer whose own whole-buffer digest is that same mask.
func TestXORMaskInvolution(t *testing.T) {
	const account, nonce = AccountID(77), NonceIndex(12)
	c := GenerateNonce(account, nonce, LayoutPoC1)

	seed := seedFrame(account, nonce)
	seedHash := shabalSum(seed[:])

	var mask [HashSize]byte
	last := c.Hash(HashesPerNonce - 1)
	for i := range mask {
		mask[i] = last[i] ^ seedHash[i]
	}

	work := make([]byte, NonceSize+seedSize)
	for i := 0; i < NonceSize; i++ {
		work[i] = c[i] ^ mask[i%HashSize]
	}
	copy(work[NonceSize:], seed[:])

	require.Equal(t, seedHash, [HashSize]byte(Cache(work).Hash(HashesPerNonce-1)),
		"stripping the mask must restore the seed hash at chain position 8191")
	require.Equal(t, mask, shabalSum(work),
		"the recovered mask must equal the digest of the pre-whitening buffer")
}

// TestGenerateNonceSeedScenarioOffsetWithinBatch: generating nonces
// 1_000_000..1_000_015 for id 1 as one width-16 batch must put the same
// bytes in lane 15 as generating id=1, n=1_000_015 on its own. The
// lane's first chain hash is additionally pinned to the cross-
// referenced golden value.
func TestGenerateNonceSeedScenarioOffsetWithinBatch(t *testing.T) {
	const width = 16
	batch, err := GenerateNonceBatch(1, 1_000_000, width, width, LayoutPoC1)
	require.NoError(t, err)

	got := batch.Deinterleave(15)
	want := GenerateNonce(1, 1_000_015, LayoutPoC1)
	require.Equal(t, want, got)
	require.Equal(t,
		mustHashHex(t, "13f50c5c38aa24a7006734da7666ee66b17c9acef2791dc450ac3087e648b764"),
		got.Hash(0))
}
