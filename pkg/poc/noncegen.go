package poc

import "shabalcore/pkg/shabal"

func shabalSum(data []byte) [shabal.Size]byte {
	return shabal.Sum256(data)
}

// Layout selects the on-disk scoop ordering a generated nonce should end
// up in.
type Layout int

const (
	// LayoutPoC1 stores scoops in chain order: scoop s holds hashes
	// 2s and 2s+1.
	LayoutPoC1 Layout = iota

	// LayoutPoC2 additionally swaps the second hash of every scoop
	// with its mirror scoop's second hash, so a single sequential
	// scoop read yields both operands a deadline needs.
	LayoutPoC2
)

// GenerateNonce computes the full 256 KiB cache for one (account, nonce)
// pair, following the reverse-chain construction: hash 8191 is computed
// first, hash 0 last, each one a Shabal-256 digest of everything already
// chained ahead of it, bounded to a HashCap-byte window once the chain
// grows past it.
//
// work is laid out as the 256 KiB cache immediately followed by the
// 16-byte seed tail, so a chain step's input window is always a
// contiguous slice of one buffer:
//
//	work = cache[0:NonceSize] || seedFrame(account, nonce)
//
// For chain position i (counting down from NonceSize to HashSize in
// HashSize steps), the hash at byte offset i-HashSize is the Shabal-256
// digest of work[i : i+length], where length = min(HashCap, len(work)-i).
// The very first step (i == NonceSize) therefore hashes the seed tail
// alone — the "synthetic" first hash of a fresh nonce, T1. The next
// several steps each absorb the growing prefix of already-written
// hashes plus the seed tail (T2: prev_hash || seed), until the window
// saturates at HashCap bytes (128 hashes) and starts sliding instead of
// growing further (the "saturated phase").
//
// Once every hash is chained, a final digest over the whole work buffer
// is XORed, repeating every HashSize bytes, across the cache: the
// whitening pass that makes every output byte depend on the nonce's own
// entirety, not just the seed that produced it.
func GenerateNonce(account AccountID, nonce NonceIndex, layout Layout) Cache {
	seed := seedFrame(account, nonce)

	work := make([]byte, NonceSize+seedSize)
	copy(work[NonceSize:], seed[:])

	for i := NonceSize; i > 0; i -= HashSize {
		length := len(work) - i
		if length > HashCap {
			length = HashCap
		}
		h := shabalSum(work[i : i+length])
		copy(work[i-HashSize:i], h[:])
	}

	final := shabalSum(work)
	cache := Cache(work[:NonceSize])
	for i := range cache {
		cache[i] ^= final[i%HashSize]
	}

	if layout == LayoutPoC2 {
		cache.ToPoC2()
	}
	return cache
}

// GenerateNonceBatch computes caches for a contiguous range of nonce
// indices [start, start+count) and interleaves them into a single
// lane-width BatchCache ready for batched deadline search. width must
// evenly bound count; any lanes beyond count are left zeroed.
//
// This is the typed, single-BatchCache building block internal/engine
// and the scalar/width-specific engines call. The raw-byte, multi-batch
// GenerateNonces free function does not call it; it fills its own
// full-width batches with GenerateNonce and Interleave.
func GenerateNonceBatch(account AccountID, start NonceIndex, count int, width int, layout Layout) (*BatchCache, error) {
	if width <= 0 {
		return nil, newError(ErrorInvalidInput, "lane width must be positive, got %d", width)
	}
	if count < 0 || count > width {
		return nil, newError(ErrorInvalidInput, "count %d must be in [0, width=%d]", count, width)
	}

	batch := NewBatchCache(width)
	for lane := 0; lane < count; lane++ {
		cache := GenerateNonce(account, start+NonceIndex(lane), layout)
		batch.Interleave(lane, cache)
	}
	return batch, nil
}
