package poc

import "encoding/binary"

// seedFrame is the 16-byte per-nonce seed tail: the account id followed
// by the nonce index, both big-endian. It anchors every hash computed
// while chaining a nonce together, and doubles as the chain's first
// ("synthetic") hash input.
//
// The reference SIMD plotters materialize this as the T1/T2/T3
// termination-frame templates: 32-byte slots holding seed || 0x80 ||
// zeros (so one vector load covers both the message tail and Shabal's
// final-block padding), with T2 pairing a prev_hash slot with the seed
// slot and T3 carrying the bare 0x80 terminator for the saturated
// phase. The streaming Go port in noncegen.go builds the exact same
// absorbed bytes without separate templates: it appends the seed once
// at the tail of its working buffer, lets each chain step read a window
// that naturally ends at it, and lets Context.finalize apply the 0x80
// block padding a literal template would carry inline.
func seedFrame(account AccountID, nonce NonceIndex) [seedSize]byte {
	var seed [seedSize]byte
	binary.BigEndian.PutUint64(seed[0:8], uint64(account))
	binary.BigEndian.PutUint64(seed[8:16], uint64(nonce))
	return seed
}
