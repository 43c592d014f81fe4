package engine

import "github.com/klauspost/cpuid/v2"

// Width4Method batches four nonces per lane group, matching a 128-bit
// SIMD register (SSE2/NEON class hardware).
type Width4Method struct {
	*laneEngine
}

// NewWidth4Method creates the 4-lane engine.
func NewWidth4Method() *Width4Method {
	return &Width4Method{laneEngine: newLaneEngine("width-4 (128-bit)", 4, hasWidth4)}
}

func hasWidth4() bool {
	return cpuid.CPU.Supports(cpuid.SSE2)
}
