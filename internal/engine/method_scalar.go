package engine

// ScalarMethod is the width-1 engine: no batching, one nonce per call. It
// is always available and is the fallback every factory resolves to when
// no wider SIMD-equivalent engine reports itself available.
type ScalarMethod struct {
	*laneEngine
}

// NewScalarMethod creates the scalar (width 1) engine.
func NewScalarMethod() *ScalarMethod {
	return &ScalarMethod{laneEngine: newLaneEngine("scalar", 1, func() bool { return true })}
}
