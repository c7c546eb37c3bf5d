package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSizes(t *testing.T) {
	tests := []struct {
		layout Layout
		size   int
		modes  bool
		weight bool
	}{
		{Runtime, 16, false, false},
		{Editor, 20, true, false},
		{RuntimeWeighted, 28, false, true},
		{EditorWeighted, 32, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.layout.Name(), func(t *testing.T) {
			assert.Equal(t, tt.size, tt.layout.Size())
			assert.Equal(t, tt.modes, tt.layout.HasTangentMode())
			assert.Equal(t, tt.weight, tt.layout.HasWeights())

			got, ok := ForSize(tt.size)
			require.True(t, ok)
			assert.Equal(t, tt.layout.Name(), got.Name())

			byName, ok := ForName(tt.layout.Name())
			require.True(t, ok)
			assert.Equal(t, tt.size, byName.Size())
		})
	}
}

func TestForSize_Unknown(t *testing.T) {
	for _, size := range []int{0, 4, 17, 24, 36} {
		_, ok := ForSize(size)
		assert.False(t, ok, "size %d should not match a layout", size)
	}
}

func TestAbsentFieldsReadZero(t *testing.T) {
	k := Key{TangentMode: 7, WeightedMode: 1, InWeight: 0.5, OutWeight: 0.5}

	assert.Zero(t, Runtime.TangentMode(&k))
	assert.Zero(t, Runtime.InWeight(&k))
	assert.Zero(t, Editor.OutWeight(&k))
	assert.Zero(t, RuntimeWeighted.TangentMode(&k))
	assert.Equal(t, int32(7), Editor.TangentMode(&k))
	assert.InDelta(t, 0.5, RuntimeWeighted.InWeight(&k), 0)

	Runtime.SetTangentMode(&k, 3)
	Editor.SetInWeight(&k, 0.25)
	assert.Equal(t, int32(7), k.TangentMode, "runtime layout must not store tangent mode")
	assert.InDelta(t, 0.5, k.InWeight, 0, "editor layout must not store weights")
}

func TestEncodeDropsAbsentFields(t *testing.T) {
	full := Key{
		Time: 1.5, Value: -2, InTangent: 0.25, OutTangent: float32(math.Inf(1)),
		TangentMode: 0x89, WeightedMode: 3, InWeight: 1.0 / 3, OutWeight: 2.0 / 3,
	}

	for _, l := range All() {
		t.Run(l.Name(), func(t *testing.T) {
			buf := FromKeys(l, []Key{full})
			require.Len(t, buf.Bytes(), l.Size())

			got := buf.Key(0)
			assert.Equal(t, full.Time, got.Time)
			assert.Equal(t, full.Value, got.Value)
			assert.Equal(t, full.InTangent, got.InTangent)
			assert.True(t, math.IsInf(float64(got.OutTangent), 1))
			assert.Equal(t, l.TangentMode(&full), got.TangentMode)
			assert.Equal(t, l.WeightedMode(&full), got.WeightedMode)
			assert.Equal(t, l.InWeight(&full), got.InWeight)
			assert.Equal(t, l.OutWeight(&full), got.OutWeight)
		})
	}
}

func TestBufferView(t *testing.T) {
	buf := NewBuffer(EditorWeighted, 3)
	assert.Equal(t, 3, buf.Len())
	assert.Len(t, buf.Bytes(), 3*EditorWeightedSize)
	for _, k := range buf.Keys() {
		assert.Equal(t, Key{}, k, "new buffers are zeroed")
	}

	buf.SetKey(1, &Key{Time: 2, Value: 4})
	assert.Equal(t, float32(4), buf.Key(1).Value)

	dst := make([]byte, len(buf.Bytes()))
	assert.Equal(t, len(dst), buf.CopyTo(dst))
	assert.Equal(t, buf.Bytes(), dst)

	wrapped := Wrap(EditorWeighted, append(dst, 0xFF, 0xFF))
	assert.Equal(t, 3, wrapped.Len(), "partial trailing record is ignored")
	assert.Equal(t, float32(2), wrapped.Key(1).Time)
}

func TestBufferNil(t *testing.T) {
	var buf *Buffer
	assert.Zero(t, buf.Len())
	assert.Nil(t, buf.Bytes())
}
