package engine

import "github.com/klauspost/cpuid/v2"

// Width16Method batches sixteen nonces per lane group, matching a
// 512-bit SIMD register (AVX512F+AVX512BW class hardware).
type Width16Method struct {
	*laneEngine
}

// NewWidth16Method creates the 16-lane engine.
func NewWidth16Method() *Width16Method {
	return &Width16Method{laneEngine: newLaneEngine("width-16 (512-bit)", 16, hasWidth16)}
}

func hasWidth16() bool {
	return cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512BW)
}
