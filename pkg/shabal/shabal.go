// Package shabal implements the Shabal-256 compression function used by
// Proof-of-Capacity plotting and mining (see pkg/poc).
//
// The initial state is not hard-coded: a process-wide bootstrap context
// is derived once, on first use, by absorbing the two out_size-dependent
// prefix blocks from an all-zero state (Whigh = Wlow = 0xFFFFFFFF), the
// same way the Burst mshabal family initializes. Every New/Reset is a
// clone of that bootstrap. The derived words are cross-checked against
// the published sphlib A_init_256/B_init_256/C_init_256 tables in
// kat_test.go, which pins the whole round function bit-for-bit.
package shabal

import (
	"encoding/binary"
	"sync"
)

// Size is the length in bytes of a Shabal-256 digest.
const Size = 32

// BlockSize is the size in bytes of a Shabal message block (16 32-bit words).
const BlockSize = 64

const (
	wordsA = 12
	wordsB = 16
	wordsC = 16
)

// Context holds the running state of a Shabal-256 computation. The zero
// value is not valid; use New.
type Context struct {
	a [wordsA]uint32
	b [wordsB]uint32
	c [wordsC]uint32

	whigh uint32
	wlow  uint32

	buf    [BlockSize]byte
	buflen int
}

// bootstrap is the process-wide "fast" context: the state reached after
// absorbing the Shabal-256 IV prefix blocks. Written once under
// bootstrapOnce, read by copy thereafter.
var (
	bootstrap     Context
	bootstrapOnce sync.Once
)

// absorbIV rebuilds ctx from scratch for the given output size in bits:
// zero the state, set both counters to all-ones, and compress the two
// prefix blocks whose words are outBits+0..15 and outBits+16..31. The
// counters land on Wlow=1, Whigh=0, exactly the published reference
// starting point.
func (ctx *Context) absorbIV(outBits int) {
	*ctx = Context{whigh: 0xffffffff, wlow: 0xffffffff}

	var block [BlockSize]byte
	for u := 0; u < 16; u++ {
		binary.LittleEndian.PutUint32(block[4*u:], uint32(outBits+u))
	}
	ctx.compress(block[:])
	for u := 0; u < 16; u++ {
		binary.LittleEndian.PutUint32(block[4*u:], uint32(outBits+16+u))
	}
	ctx.compress(block[:])
}

// Bootstrap forces the one-time derivation of the process-wide fast
// context. It is idempotent and safe to call from any goroutine; calling
// it is optional, New and Reset trigger it on demand.
func Bootstrap() {
	bootstrapOnce.Do(func() {
		bootstrap.absorbIV(Size * 8)
	})
}

// New returns a freshly initialized Shabal-256 context.
func New() *Context {
	ctx := &Context{}
	ctx.Reset()
	return ctx
}

// Reset restores the context to its initial state, as returned by New.
// This is a copy of the shared bootstrap context, not a re-derivation.
func (ctx *Context) Reset() {
	Bootstrap()
	*ctx = bootstrap
}

// Clone returns an independent copy of ctx. Cloning is the basis of the
// Proof-of-Capacity nonce generator, which re-hashes a sliding window of
// prior output on top of a freshly reset context for every chain step.
func (ctx *Context) Clone() *Context {
	cp := *ctx
	return &cp
}

// Write absorbs p into the running hash, a la hash.Hash. It never returns
// an error.
func (ctx *Context) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		if ctx.buflen == 0 && len(p) >= BlockSize {
			ctx.compress(p[:BlockSize])
			p = p[BlockSize:]
			continue
		}
		k := copy(ctx.buf[ctx.buflen:], p)
		ctx.buflen += k
		p = p[k:]
		if ctx.buflen == BlockSize {
			ctx.compress(ctx.buf[:])
			ctx.buflen = 0
		}
	}
	return n, nil
}

// Sum appends the current digest to b and returns the resulting slice,
// without modifying the receiver's state (the underlying context is
// cloned before finalization).
func (ctx *Context) Sum(b []byte) []byte {
	cp := ctx.Clone()
	var out [Size]byte
	cp.finalize(&out)
	return append(b, out[:]...)
}

// Sum256 hashes data in one call and returns its 32-byte digest.
func Sum256(data []byte) [Size]byte {
	ctx := New()
	ctx.Write(data)
	var out [Size]byte
	ctx.finalize(&out)
	return out
}
