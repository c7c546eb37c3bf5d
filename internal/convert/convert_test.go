package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-keyframe-reducer/internal/layout"
	"github.com/tphakala/go-keyframe-reducer/internal/tangent"
	"github.com/tphakala/go-keyframe-reducer/internal/testutil"
)

func yawQuat(deg float64) [4]float32 {
	half := deg * math.Pi / 360
	return [4]float32{0, float32(math.Sin(half)), 0, float32(math.Cos(half))}
}

func vectorSource(d DataType, n int) *Source {
	src := &Source{Type: d}
	for i := range n {
		f := float32(i)
		src.Times = append(src.Times, f/30)
		src.Values = append(src.Values, [4]float32{f, 2 * f, 3 * f, 4 * f})
	}
	return src
}

func TestChannels(t *testing.T) {
	tests := []struct {
		d      DataType
		im     tangent.Interpolation
		expect int
	}{
		{TypeInt, tangent.InterpolationLinear, 1},
		{TypeFloat, tangent.InterpolationSmooth, 1},
		{TypeFloat2, tangent.InterpolationConstant, 2},
		{TypeFloat3, tangent.InterpolationSmooth, 3},
		{TypeFloat4, tangent.InterpolationLinear, 4},
		{TypeQuaternion, tangent.InterpolationSmooth, 4},
		{TypeQuaternion, tangent.InterpolationLinear, 3},
		{TypeQuaternion, tangent.InterpolationConstant, 3},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.expect, Channels(tt.d, tt.im))

			bufs := Curve(layout.EditorWeighted, vectorSource(tt.d, 6), tt.im)
			require.Len(t, bufs, tt.expect)
			for _, b := range bufs {
				assert.Equal(t, 6, b.Len(), "all channels share the sample count")
			}
		})
	}
}

func TestCurve_FillsComponents(t *testing.T) {
	src := vectorSource(TypeFloat3, 4)
	bufs := Curve(layout.Editor, src, tangent.InterpolationLinear)
	require.Len(t, bufs, 3)

	for c, b := range bufs {
		keys := b.Keys()
		testutil.AssertTimesIncreasing(t, keys)
		for i, k := range keys {
			assert.Equal(t, src.Times[i], k.Time)
			assert.Equal(t, src.Values[i][c], k.Value)
			assert.Equal(t, tangent.Pack(tangent.ModeLinear, tangent.ModeLinear, true), k.TangentMode)
		}
		// Line of slope (c+1)*30 in time.
		assert.InDelta(t, float32(c+1)*30, keys[1].InTangent, 1e-3)
	}
}

func TestCurve_QuaternionSmoothKeepsComponents(t *testing.T) {
	src := &Source{
		Type:   TypeQuaternion,
		Times:  []float32{0, 1, 2},
		Values: [][4]float32{yawQuat(0), yawQuat(90), yawQuat(180)},
	}
	bufs := Curve(layout.EditorWeighted, src, tangent.InterpolationSmooth)
	require.Len(t, bufs, 4)

	for i := range src.Times {
		for c := range 4 {
			assert.Equal(t, src.Values[i][c], bufs[c].Key(i).Value)
		}
	}
}

func TestCurve_QuaternionToEuler(t *testing.T) {
	src := &Source{
		Type:   TypeQuaternion,
		Times:  []float32{0, 1, 2, 3},
		Values: [][4]float32{yawQuat(90), yawQuat(179), yawQuat(-179), yawQuat(-90)},
	}
	bufs := Curve(layout.EditorWeighted, src, tangent.InterpolationLinear)
	require.Len(t, bufs, 3)

	y := bufs[1].Keys()
	want := []float32{90, 179, 181, 270}
	for i := range want {
		assert.InDelta(t, want[i], y[i].Value, testutil.AngleTolerance, "sample %d", i)
		assert.InDelta(t, 0, bufs[0].Key(i).Value, testutil.AngleTolerance)
		assert.InDelta(t, 0, bufs[2].Key(i).Value, testutil.AngleTolerance)
	}
}

func TestCurve_ForceConstant(t *testing.T) {
	src := vectorSource(TypeFloat2, 5)
	src.ForceConstant = true

	for _, b := range Curve(layout.EditorWeighted, src, tangent.InterpolationSmooth) {
		for _, k := range b.Keys() {
			assert.True(t, tangent.IsConstant(k.InTangent))
			assert.True(t, tangent.IsConstant(k.OutTangent))
			assert.Equal(t, tangent.Pack(tangent.ModeConstant, tangent.ModeConstant, true), k.TangentMode)
		}
	}
}

func TestCurve_ForceConstantQuaternionUsesEuler(t *testing.T) {
	src := &Source{
		Type:          TypeQuaternion,
		Times:         []float32{0, 1},
		Values:        [][4]float32{yawQuat(10), yawQuat(20)},
		ForceConstant: true,
	}
	assert.Len(t, Curve(layout.Editor, src, tangent.InterpolationSmooth), 3)
}

func TestCurve_ZeroLength(t *testing.T) {
	for _, d := range []DataType{TypeFloat, TypeFloat4, TypeQuaternion} {
		bufs := Curve(layout.EditorWeighted, &Source{Type: d}, tangent.InterpolationLinear)
		require.Len(t, bufs, Channels(d, tangent.InterpolationLinear))
		for _, b := range bufs {
			assert.Zero(t, b.Len())
			assert.Empty(t, b.Bytes())
		}
	}
}

func TestCurve_MismatchedLengths(t *testing.T) {
	src := vectorSource(TypeFloat, 4)
	src.Times = src.Times[:3]
	bufs := Curve(layout.Runtime, src, tangent.InterpolationLinear)
	require.Len(t, bufs, 1)
	assert.Equal(t, 3, bufs[0].Len())
}

func TestCurve_Idempotent(t *testing.T) {
	for _, im := range []tangent.Interpolation{
		tangent.InterpolationSmooth, tangent.InterpolationLinear, tangent.InterpolationConstant,
	} {
		src := vectorSource(TypeFloat, 8)
		first := Curve(layout.EditorWeighted, src, im)[0]

		keys := first.Keys()
		tangent.Apply(layout.EditorWeighted, keys, im)
		assert.Equal(t, first.Bytes(), layout.FromKeys(layout.EditorWeighted, keys).Bytes(), "mode %d", im)
	}
}

func TestDataType_String(t *testing.T) {
	assert.Equal(t, "quaternion", TypeQuaternion.String())
	assert.Equal(t, "unknown", DataType(99).String())
	assert.Equal(t, 1, DataType(99).Components())
}
