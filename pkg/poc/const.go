// Package poc implements the Proof-of-Capacity plot format and mining
// primitives built on top of the Shabal-256 kernel in pkg/shabal.
package poc

// Sizing constants for the Burst/Signum-style Proof-of-Capacity format.
// These values, and their relationships, are part of the wire-compatible
// contract: every plotter and miner in the ecosystem must agree on them
// exactly.
const (
	// HashSize is the length in bytes of a single Shabal-256 digest.
	HashSize = 32

	// HashesPerNonce is the number of chained hashes that make up one
	// 256 KiB nonce.
	HashesPerNonce = 8192

	// ScoopSize is the size in bytes of one scoop: two adjacent 32-byte
	// hashes.
	ScoopSize = 2 * HashSize

	// ScoopsPerNonce is the number of scoops in one nonce.
	ScoopsPerNonce = HashesPerNonce / 2

	// NonceSize is the total size in bytes of one plotted nonce (256 KiB).
	NonceSize = HashesPerNonce * HashSize

	// HashCap is the absorb window, in bytes, beyond which the nonce
	// chaining hash stops growing and starts sliding: the chain's
	// "early phase" (growing window) switches to its "saturated phase"
	// (fixed HashCap-byte window) once the accumulated message length
	// would otherwise exceed it.
	HashCap = 4096

	// seedSize is the length in bytes of the per-nonce seed tail: the
	// big-endian account id followed by the big-endian nonce index.
	// Only these 16 bytes are message content; the reference SIMD
	// plotters pad them out to a 32-byte template slot whose tail is
	// the Shabal terminator byte and zeros.
	seedSize = 16
)

// AccountID identifies a mining account (Burst/Signum numeric account id).
type AccountID uint64

// NonceIndex identifies a single plotted nonce within an account's plot
// files.
type NonceIndex uint64

// Deadline is the raw 64-bit score derived from a scoop and a generation
// signature, lower-is-better. It is not divided by a network base target,
// so it is not a number of seconds.
type Deadline uint64
