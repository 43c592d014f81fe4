package shabal

import "encoding/binary"

func decodeBlock(block []byte) [16]uint32 {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(block[i*4:])
	}
	return m
}

// compress absorbs one 64-byte block into the running state: add the
// message into B, fold the block counter into A, rotate B, run the
// permutation, accumulate C back into A, subtract the message from C,
// swap the B/C roles and advance the counter.
func (ctx *Context) compress(block []byte) {
	m := decodeBlock(block)

	for i := range ctx.b {
		ctx.b[i] += m[i]
	}

	ctx.a[0] ^= ctx.wlow
	ctx.a[1] ^= ctx.whigh

	for i := range ctx.b {
		ctx.b[i] = rotl32(ctx.b[i], 17)
	}

	permute(&ctx.a, &ctx.b, &ctx.c, &m)

	for j := 0; j < 36; j++ {
		ctx.a[11-j%12] += ctx.c[(22-j%16)%16]
	}

	for i := range ctx.c {
		ctx.c[i] -= m[i]
	}
	ctx.b, ctx.c = ctx.c, ctx.b

	ctx.wlow++
	if ctx.wlow == 0 {
		ctx.whigh++
	}
}

// finalize pads the final partial block, compresses it once with the
// counter advancing normally, then runs the three extra whitening
// rounds: each decrements the counter before re-compressing the same
// padded block, cancelling compress's advance so every round folds the
// same counter value into A — the reference shabal_close holds W fixed
// across all four passes. The digest is the last eight words of C (the
// final pass's B output, post-swap).
func (ctx *Context) finalize(out *[Size]byte) {
	var tail [BlockSize]byte
	copy(tail[:], ctx.buf[:ctx.buflen])
	tail[ctx.buflen] = 0x80

	ctx.compress(tail[:])
	for r := 0; r < 3; r++ {
		if ctx.wlow == 0 {
			ctx.whigh--
		}
		ctx.wlow--
		ctx.compress(tail[:])
	}

	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], ctx.c[wordsC-8+i])
	}
}
