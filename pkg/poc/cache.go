package poc

// Cache is a single plotted nonce's 256 KiB of scoop data, laid out as
// HashesPerNonce consecutive 32-byte hashes (equivalently ScoopsPerNonce
// consecutive 64-byte scoops).
type Cache []byte

// NewCache allocates a zeroed, correctly sized Cache.
func NewCache() Cache {
	return make(Cache, NonceSize)
}

// Hash returns the h'th 32-byte hash within the cache.
func (c Cache) Hash(h int) []byte {
	return c[h*HashSize : (h+1)*HashSize]
}

// Scoop returns the s'th 64-byte scoop (hashes 2s and 2s+1) within the
// cache.
func (c Cache) Scoop(s int) []byte {
	return c[s*ScoopSize : (s+1)*ScoopSize]
}

// ToPoC2 rewrites the cache in place from PoC1 layout to PoC2 layout. PoC2
// swaps the second hash of every scoop s with the second hash of its
// mirror scoop ScoopsPerNonce-1-s, so that a single sequential scoop read
// from a PoC2 file yields both hashes a deadline computation needs.
//
// ToPoC2 is its own inverse: calling it twice returns the cache to PoC1
// layout (the mirror pairing is symmetric, and the scoop at the exact
// center, if any, mirrors itself and is left untouched).
func (c Cache) ToPoC2() {
	for s := 0; s < ScoopsPerNonce/2; s++ {
		mirror := ScoopsPerNonce - 1 - s
		a := c.Scoop(s)[HashSize:]
		b := c.Scoop(mirror)[HashSize:]
		for i := 0; i < HashSize; i++ {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// BatchCache holds a lane-interleaved block of B nonces' worth of scoop
// data, organized so that reading all B lanes of a single hash is a
// contiguous access: byte k of hash h of lane b lives at offset
// (h*HashSize+k)*width + b.
type BatchCache struct {
	Width int
	Data  []byte
}

// NewBatchCache allocates a zeroed BatchCache for the given lane width.
func NewBatchCache(width int) *BatchCache {
	return &BatchCache{
		Width: width,
		Data:  make([]byte, NonceSize*width),
	}
}

// Interleave copies lane b's linear Cache into the batch at lane b.
func (bc *BatchCache) Interleave(lane int, c Cache) {
	w := bc.Width
	for h := 0; h < HashesPerNonce; h++ {
		base := h * HashSize * w
		src := c.Hash(h)
		for k := 0; k < HashSize; k++ {
			bc.Data[base+k*w+lane] = src[k]
		}
	}
}

// Scoop returns the s'th 64-byte scoop for a single lane, gathered
// directly out of the interleaved batch without deinterleaving the
// whole nonce. Lane b's byte k of hash h lives at (h*HashSize+k)*width+b,
// so a lane's scoop is a strided read, not a contiguous slice — this is
// what the deadline engine uses instead of a full Deinterleave per scoop
// search.
func (bc *BatchCache) Scoop(lane, s int) []byte {
	w := bc.Width
	out := make([]byte, ScoopSize)
	base := s * ScoopSize * w
	for k := 0; k < ScoopSize; k++ {
		out[k] = bc.Data[base+k*w+lane]
	}
	return out
}

// Deinterleave extracts lane b's linear Cache out of the batch.
func (bc *BatchCache) Deinterleave(lane int) Cache {
	w := bc.Width
	out := NewCache()
	for h := 0; h < HashesPerNonce; h++ {
		base := h * HashSize * w
		dst := out.Hash(h)
		for k := 0; k < HashSize; k++ {
			dst[k] = bc.Data[base+k*w+lane]
		}
	}
	return out
}
