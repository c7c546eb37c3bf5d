package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_ReturnsSharedTables(t *testing.T) {
	assert.Same(t, Float32Ops(), For[float32]())
	assert.Same(t, Float64Ops(), For[float64]())
}

func TestScale(t *testing.T) {
	src := []float32{0, 1, -2, 0.5}
	dst := make([]float32, len(src))
	Float32Ops().Scale(dst, src, 4)
	assert.Equal(t, []float32{0, 4, -8, 2}, dst)
}

func TestRMSAndMean(t *testing.T) {
	assert.InDelta(t, 5.0/2, RMS([]float64{3, 4, 0, 0}), 1e-12)
	assert.InDelta(t, 1.75, Mean([]float32{3, 4, 0, 0}), 1e-6)
	assert.Zero(t, RMS[float32](nil))
	assert.Zero(t, Mean[float64](nil))
}

// BenchmarkIndirectF32DotProduct measures indirect call through Ops struct.
func BenchmarkIndirectF32DotProduct(b *testing.B) {
	ops := For[float32]()
	a := make([]float32, 64)
	c := make([]float32, 64)
	for i := range a {
		a[i] = float32(i) * 0.01
		c[i] = float32(i) * 0.02
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(a, c)
	}
}
