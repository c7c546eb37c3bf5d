package keyframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withKeyframeSize(t *testing.T, size int) {
	t.Helper()
	prev := KeyframeSize()
	SetKeyframeSize(size)
	t.Cleanup(func() { SetKeyframeSize(prev) })
}

func TestHost_UnknownSizeIsNoop(t *testing.T) {
	for _, size := range []int{0, 24, 64} {
		withKeyframeSize(t, size)

		c := NewCurve("x", lineSamples(5))
		CurveConvert(c, Linear)
		assert.Zero(t, CurveNumElements(c), "size %d", size)

		a := &Animation{Curves: []*Curve{c}}
		AnimationConvert(a, Linear)
		ClipConvert(&Clip{Animations: []*Animation{a}}, Linear)
		assert.Zero(t, CurveNumElements(c))
	}
}

func TestHost_ReduceNoopAfterSizeChange(t *testing.T) {
	withKeyframeSize(t, KeySizeEditorWeighted)
	c := NewCurve("x", lineSamples(5))
	CurveConvert(c, Linear)
	require.Equal(t, 5, CurveNumKeys(c, 0))

	SetKeyframeSize(17)
	CurveReduce(c, 0.01)
	AnimationReduce(&Animation{Curves: []*Curve{c}}, 0.01)
	assert.Equal(t, 5, CurveNumKeys(c, 0), "reduction skipped while the size is unknown")

	SetKeyframeSize(KeySizeEditorWeighted)
	CurveReduce(c, 0.01)
	assert.Equal(t, 2, CurveNumKeys(c, 0))
}

func TestHost_EveryLayout(t *testing.T) {
	for _, l := range Layouts() {
		t.Run(l.Name(), func(t *testing.T) {
			withKeyframeSize(t, l.Size())

			clip := &Clip{Animations: []*Animation{{
				Curves: []*Curve{NewCurve("v", []Sample[Vec2]{{0, Vec2{0, 1}}, {1, Vec2{1, 1}}, {2, Vec2{2, 1}}})},
			}}}
			ClipConvert(clip, Linear)
			ClipReduce(clip, 0.001)

			c := clip.Animations[0].Curves[0]
			require.Equal(t, 2, CurveNumElements(c))
			assert.Equal(t, l.Size(), c.Layout().Size())

			n := CurveNumKeys(c, 1)
			dst := make([]byte, n*l.Size())
			CurveCopy(c, 1, dst)
			assert.NotEqual(t, make([]byte, len(dst)), dst, "records copied")

			short := make([]byte, 3)
			CurveCopy(c, 1, short)
			assert.Equal(t, make([]byte, 3), short, "short buffers are left untouched")
		})
	}
}

func TestHost_NilCurve(t *testing.T) {
	assert.Zero(t, CurveNumElements(nil))
	assert.Zero(t, CurveNumKeys(nil, 0))
	CurveCopy(nil, 0, nil)
}
