// Package engine selects and drives the lane-width-specific plotting and
// mining backends built on pkg/poc and pkg/shabal.
//
// Go has no portable SIMD intrinsics, so unlike a native plotter's
// hand-written 4/8/16-lane assembly kernels, every width here is a thin
// Go loop over pkg/poc's single-lane primitives, batched through a
// lane-interleaved BatchCache. The width still matters: it is how many
// nonces a single GenerateNonces/FindBestDeadline round trip covers, and
// callers pick it the same way the reference implementation picks an
// ASIC, CUDA or software hash method - by querying what the current
// machine can support and its expected throughput.
package engine

import "shabalcore/pkg/poc"

// Engine computes plots and deadlines for a fixed lane width.
type Engine interface {
	// Name is a human-readable identifier for this engine.
	Name() string

	// Width is the number of nonces this engine processes per batch call.
	Width() int

	// IsAvailable reports whether the current CPU supports this engine's
	// required instruction set.
	IsAvailable() bool

	// Initialize performs any setup required before use.
	Initialize() error

	// Shutdown releases any resources acquired by Initialize.
	Shutdown() error

	// GenerateNonces computes up to Width nonces starting at start into a
	// freshly allocated batch.
	GenerateNonces(account poc.AccountID, start poc.NonceIndex, count int, layout poc.Layout) (*poc.BatchCache, error)

	// FindBestDeadline scans the first count lanes of batch at the given
	// scoop under gensig and returns the lowest deadline found, with its
	// offset translated back to an absolute nonce index relative to
	// start.
	FindBestDeadline(batch *poc.BatchCache, start poc.NonceIndex, count int, scoop int, gensig [poc.GensigSize]byte) poc.BestResult

	// Capabilities reports this engine's characteristics.
	Capabilities() *Capabilities
}

// Capabilities describes an engine's performance and readiness.
type Capabilities struct {
	Name              string `json:"name"`
	Width             int    `json:"width"`
	EstimatedHashRate uint64 `json:"estimated_hash_rate"`
	ProductionReady   bool   `json:"production_ready"`
	MaxBatchSize      int    `json:"max_batch_size"`
	Reason            string `json:"reason,omitempty"`
}
