package poc

import (
	"encoding/binary"

	"shabalcore/pkg/shabal"
)

// GensigSize is the length in bytes of a generation signature.
const GensigSize = 32

// ScoopPair returns the two 32-byte hashes a deadline computation at
// scoop s needs, read from a cache already in PoC2 layout: u1 is scoop
// s's own first hash, u2 is its second — which, after the PoC2 mirror
// swap, already holds the mirror scoop's second hash in place.
func (c Cache) ScoopPair(s int) (u1, u2 []byte) {
	scoop := c.Scoop(s)
	return scoop[:HashSize], scoop[HashSize:]
}

// ScoopPairFromPoC1 computes the same pair directly from an unmirrored
// PoC1 cache, reaching across to the mirror scoop on the fly instead of
// relying on ToPoC2 having already been applied. It exists to prove the
// PoC1/PoC2 equivalence invariant in deadline_test.go; production code
// should generate nonces as LayoutPoC2 and call ScoopPair.
func (c Cache) ScoopPairFromPoC1(s int) (u1, u2 []byte) {
	mirror := ScoopsPerNonce - 1 - s
	return c.Scoop(s)[:HashSize], c.Scoop(mirror)[HashSize:]
}

// ScoopDeadline computes the raw deadline for a single scoop's two
// hashes under the given generation signature: the first eight bytes,
// read little-endian, of Shabal-256(gensig || u1 || u2).
//
// Lower is better; there is no division by a network base target here,
// and none of this module's callers (cmd/poc-mine included) applies one:
// they report this raw value.
func ScoopDeadline(gensig [GensigSize]byte, u1, u2 []byte) Deadline {
	msg := make([]byte, 0, GensigSize+2*HashSize)
	msg = append(msg, gensig[:]...)
	msg = append(msg, u1...)
	msg = append(msg, u2...)

	digest := shabalSum(msg)
	return Deadline(binary.LittleEndian.Uint64(digest[:8]))
}

// BestResult is the outcome of scanning a range of nonces for the lowest
// deadline.
type BestResult struct {
	Deadline Deadline
	Offset   uint64
	hasBest  bool
}

// Found reports whether the scan examined at least one nonce. It exists
// so a genuine deadline of zero is never mistaken for "no result yet":
// BestResult starts with hasBest false rather than overloading the zero
// value of Deadline as a sentinel a real deadline could also take. The
// first candidate always wins the first comparison, so callers seeding
// best_deadline = 0 externally observe the reference behavior.
func (r BestResult) Found() bool {
	return r.hasBest
}

func (r *BestResult) consider(d Deadline, offset uint64) {
	if !r.hasBest || d < r.Deadline {
		r.Deadline = d
		r.Offset = offset
		r.hasBest = true
	}
}

// FindBestDeadlineCaches scans a slice of linear (non-interleaved)
// caches, already in PoC2 layout, for the lowest deadline at scoop s
// under gensig. It is the un-batched reference form of the deadline
// engine, used directly by tests, cmd/poc-mine, cmd/poc-monitor and the
// status server's /mine handler.
func FindBestDeadlineCaches(caches []Cache, scoop int, gensig [GensigSize]byte) BestResult {
	var best BestResult
	for i, c := range caches {
		u1, u2 := c.ScoopPair(scoop)
		best.consider(ScoopDeadline(gensig, u1, u2), uint64(i))
	}
	return best
}

// FindBestDeadlineBatch scans the first count lanes of a lane-interleaved
// BatchCache built by GenerateNonces, returning the lowest deadline at
// scoop under gensig.
func FindBestDeadlineBatch(batch *BatchCache, count int, scoop int, gensig [GensigSize]byte) BestResult {
	var best BestResult
	for lane := 0; lane < count; lane++ {
		scoop64 := batch.Scoop(lane, scoop)
		best.consider(ScoopDeadline(gensig, scoop64[:HashSize], scoop64[HashSize:]), uint64(lane))
	}
	return best
}

// GenerateNonces is the flat-buffer form of the plotter:
// it writes count nonces for account id, starting at startNonce, into
// cache as count/int(lanes) back-to-back lane-interleaved batches (PoC2
// layout), for direct use without going through internal/engine — tests,
// cmd/poc-plot and the status server's /plot handler call this form
// directly.
func GenerateNonces(lanes shabal.Width, cache []byte, id AccountID, startNonce NonceIndex, count uint64) error {
	width := int(lanes)
	if !lanes.Valid() {
		return newError(ErrorInvalidInput, "unsupported lane width %d", lanes)
	}
	if count == 0 || count%uint64(width) != 0 {
		return newError(ErrorInvalidInput, "nonce count %d must be a positive multiple of lane width %d", count, width)
	}
	if uint64(len(cache)) != count*NonceSize {
		return newError(ErrorInvalidInput, "cache length %d does not match count*NonceSize (%d)", len(cache), count*NonceSize)
	}

	for batchStart := uint64(0); batchStart < count; batchStart += uint64(width) {
		batch := NewBatchCache(width)
		for lane := 0; lane < width; lane++ {
			n := startNonce + NonceIndex(batchStart) + NonceIndex(lane)
			batch.Interleave(lane, GenerateNonce(id, n, LayoutPoC2))
		}
		copy(cache[batchStart*NonceSize:], batch.Data)
	}
	return nil
}

// FindBestDeadline is the flat-buffer form of the deadline scan:
// it scans nonceCount PoC2-layout nonces in cache (interleaved in
// lane-width batches, as produced by GenerateNonces above) at the given
// scoop under gensig, returning the lowest deadline and its nonce
// offset from the start of cache.
func FindBestDeadline(lanes shabal.Width, cache []byte, scoop int, nonceCount uint64, gensig [GensigSize]byte) (Deadline, uint64, error) {
	width := int(lanes)
	if !lanes.Valid() {
		return 0, 0, newError(ErrorInvalidInput, "unsupported lane width %d", lanes)
	}
	if scoop < 0 || scoop >= ScoopsPerNonce {
		return 0, 0, newError(ErrorOutOfRange, "scoop %d out of range [0, %d)", scoop, ScoopsPerNonce)
	}
	if nonceCount == 0 || nonceCount%uint64(width) != 0 {
		return 0, 0, newError(ErrorInvalidInput, "nonce count %d must be a positive multiple of lane width %d", nonceCount, width)
	}
	if uint64(len(cache)) != nonceCount*NonceSize {
		return 0, 0, newError(ErrorInvalidInput, "cache length %d does not match nonceCount*NonceSize (%d)", len(cache), nonceCount*NonceSize)
	}

	var best BestResult
	for batchStart := uint64(0); batchStart < nonceCount; batchStart += uint64(width) {
		slab := cache[batchStart*NonceSize : (batchStart+uint64(width))*NonceSize]
		batch := &BatchCache{Width: width, Data: slab}
		local := FindBestDeadlineBatch(batch, width, scoop, gensig)
		best.consider(local.Deadline, batchStart+local.Offset)
	}
	if !best.hasBest {
		return 0, 0, nil
	}
	return best.Deadline, best.Offset, nil
}
