package reduce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-keyframe-reducer/internal/layout"
	"github.com/tphakala/go-keyframe-reducer/internal/tangent"
	"github.com/tphakala/go-keyframe-reducer/internal/testutil"
)

func converted(keys []layout.Key, im tangent.Interpolation) []layout.Key {
	tangent.Apply(layout.EditorWeighted, keys, im)
	return keys
}

func timesOf(keys []layout.Key) []float32 {
	ts := make([]float32, len(keys))
	for i, k := range keys {
		ts[i] = k.Time
	}
	return ts
}

func TestEvaluate_Endpoints(t *testing.T) {
	k1 := layout.Key{Time: 1, Value: 3, OutTangent: 5}
	k2 := layout.Key{Time: 2, Value: -1, InTangent: -4}

	assert.Equal(t, float32(3), Evaluate(&k1, &k2, 1))
	assert.InDelta(t, -1, Evaluate(&k1, &k2, 2), testutil.DefaultTolerance)
}

func TestEvaluate_StraightLine(t *testing.T) {
	k1 := layout.Key{Time: 0, Value: 0, OutTangent: 2}
	k2 := layout.Key{Time: 4, Value: 8, InTangent: 2}

	for _, x := range []float32{0.5, 1, 2.5, 3.75} {
		assert.InDelta(t, 2*x, Evaluate(&k1, &k2, x), testutil.DefaultTolerance, "t=%v", x)
	}
}

func TestEvaluate_FlatTangents(t *testing.T) {
	// Smoothstep between 0 and 1.
	k1 := layout.Key{Time: 0, Value: 0}
	k2 := layout.Key{Time: 2, Value: 1}
	assert.InDelta(t, 0.5, Evaluate(&k1, &k2, 1), testutil.DefaultTolerance)
	assert.InDelta(t, 0.15625, Evaluate(&k1, &k2, 0.5), testutil.DefaultTolerance)
}

func TestEvaluate_ConstantHolds(t *testing.T) {
	k1 := layout.Key{Time: 0, Value: 7, OutTangent: tangent.Infinity()}
	k2 := layout.Key{Time: 1, Value: 9, InTangent: tangent.Infinity()}

	for _, x := range []float32{0, 0.3, 0.999, 1} {
		assert.Equal(t, float32(7), Evaluate(&k1, &k2, x))
	}
}

func TestKeys_SmoothLine(t *testing.T) {
	keys := converted(testutil.Line(5, 1), tangent.InterpolationSmooth)
	got := Keys(keys, 0.01)

	// Flat end tangents bend the curve near both ends, so the keys next to
	// the first and last key stay.
	assert.Equal(t, []float32{0, 1, 3, 4}, timesOf(got))
	testutil.AssertEndpointsKept(t, keys, got)
	testutil.AssertSubsequence(t, keys, got)
}

func TestKeys_LinearLine(t *testing.T) {
	keys := converted(testutil.Line(5, 1), tangent.InterpolationLinear)
	got := Keys(keys, 0.01)

	require.Len(t, got, 2)
	assert.Equal(t, keys[0], got[0])
	assert.Equal(t, keys[4], got[1])
}

func TestKeys_ConstantSteps(t *testing.T) {
	for _, eps := range []float32{0, 0.01, 0.5, 0.999} {
		keys := converted(testutil.Line(5, 1), tangent.InterpolationConstant)
		got := Keys(keys, eps)
		assert.Len(t, got, 5, "eps=%v", eps)
	}
}

func TestKeys_ConstantWithinStepHeight(t *testing.T) {
	keys := converted(testutil.Line(5, 1), tangent.InterpolationConstant)
	got := Keys(keys, 1)
	assert.Equal(t, []float32{0, 2, 4}, timesOf(got))
}

func TestKeys_AnchorStaysAcrossRedundantRun(t *testing.T) {
	// A flat run followed by a jump: every flat key is tested against key 0.
	keys := converted(testutil.KeysOf(
		[]float32{0, 1, 2, 3, 4, 5},
		[]float32{1, 1, 1, 1, 1, 9},
	), tangent.InterpolationLinear)

	got := Keys(keys, 0.001)
	assert.Equal(t, []float32{0, 4, 5}, timesOf(got))
}

func TestKeys_ShortChannels(t *testing.T) {
	assert.Empty(t, Keys(nil, 0.1))

	one := converted(testutil.Line(1, 3), tangent.InterpolationSmooth)
	assert.Equal(t, one, Keys(one, 0.1))

	two := converted(testutil.Line(2, 3), tangent.InterpolationSmooth)
	assert.Equal(t, two, Keys(two, 1000))
}

func TestKeys_Invariants(t *testing.T) {
	modes := []tangent.Interpolation{
		tangent.InterpolationSmooth,
		tangent.InterpolationLinear,
		tangent.InterpolationConstant,
	}

	for seed := range uint64(20) {
		for _, im := range modes {
			for _, eps := range []float32{0, 0.05, 0.5, 5} {
				keys := converted(testutil.RandomWalk(seed, 64), im)
				got := Keys(keys, eps)

				assert.LessOrEqual(t, len(got), len(keys))
				assert.GreaterOrEqual(t, len(got), 2)
				testutil.AssertEndpointsKept(t, keys, got, "seed=%d mode=%d eps=%v", seed, im, eps)
				testutil.AssertSubsequence(t, keys, got)
				testutil.AssertTimesIncreasing(t, got)
				testutil.AssertNoNaN(t, got)
			}
		}
	}
}

func TestKeys_ZeroToleranceKeepsCurvedChannel(t *testing.T) {
	times := make([]float32, 16)
	values := make([]float32, 16)
	for i := range times {
		times[i] = float32(i) * 0.1
		values[i] = float32(math.Sin(float64(i) * 0.7))
	}
	keys := converted(testutil.KeysOf(times, values), tangent.InterpolationLinear)

	assert.Len(t, Keys(keys, 0), len(keys))
}

func TestBuffer(t *testing.T) {
	keys := converted(testutil.Line(5, 1), tangent.InterpolationLinear)
	buf := layout.FromKeys(layout.EditorWeighted, keys)

	got := Buffer(buf, 0.01)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, layout.EditorWeighted.Size(), got.Layout().Size())
	assert.Len(t, got.Bytes(), 2*layout.EditorWeightedSize)
	assert.Equal(t, keys[4], got.Key(1))

	assert.Equal(t, 5, buf.Len(), "input buffer is not modified")
}

func TestBuffer_NothingDropped(t *testing.T) {
	keys := converted(testutil.Line(4, 1), tangent.InterpolationConstant)
	buf := layout.FromKeys(layout.Editor, keys)
	assert.Same(t, buf, Buffer(buf, 0))

	short := layout.NewBuffer(layout.Runtime, 2)
	assert.Same(t, short, Buffer(short, 0))

	empty := layout.NewBuffer(layout.Runtime, 0)
	assert.Same(t, empty, Buffer(empty, 0))
}

func TestSample(t *testing.T) {
	keys := converted(testutil.Line(5, 2), tangent.InterpolationLinear)

	assert.Zero(t, Sample(nil, 1))
	assert.Equal(t, float32(0), Sample(keys, -3))
	assert.Equal(t, float32(8), Sample(keys, 10))
	assert.Equal(t, float32(4), Sample(keys, 2))
	assert.InDelta(t, 5, Sample(keys, 2.5), testutil.DefaultTolerance)
	assert.InDelta(t, 7.5, Sample(keys, 3.75), testutil.DefaultTolerance)
}

func TestSample_RepeatedTimes(t *testing.T) {
	keys := testutil.KeysOf([]float32{0, 1, 1, 2}, []float32{0, 1, 5, 5})
	tangent.Apply(layout.EditorWeighted, keys, tangent.InterpolationConstant)

	assert.Equal(t, float32(5), Sample(keys, 1))
	assert.Equal(t, float32(0), Sample(keys, 0.5))
	assert.Equal(t, float32(5), Sample(keys, 1.5))
}

func BenchmarkKeys_Smooth(b *testing.B) {
	keys := converted(testutil.RandomWalk(1, 4096), tangent.InterpolationSmooth)

	for b.Loop() {
		_ = Keys(keys, 0.05)
	}
}
