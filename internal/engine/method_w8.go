package engine

import "github.com/klauspost/cpuid/v2"

// Width8Method batches eight nonces per lane group, matching a 256-bit
// SIMD register (AVX2 class hardware).
type Width8Method struct {
	*laneEngine
}

// NewWidth8Method creates the 8-lane engine.
func NewWidth8Method() *Width8Method {
	return &Width8Method{laneEngine: newLaneEngine("width-8 (256-bit)", 8, hasWidth8)}
}

func hasWidth8() bool {
	return cpuid.CPU.Supports(cpuid.AVX2)
}
