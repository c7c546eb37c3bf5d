package keyframe

import (
	"sync/atomic"

	"github.com/tphakala/go-keyframe-reducer/internal/layout"
)

// Process-wide key record size for hosts that cannot pass a layout with
// each call. Zero means unset.
var keyframeSize atomic.Int32

// SetKeyframeSize sets the active key record size in bytes. Sizes matching
// no layout are stored too; every host call then does nothing.
func SetKeyframeSize(size int) {
	keyframeSize.Store(int32(size))
}

// KeyframeSize returns the active key record size in bytes.
func KeyframeSize() int {
	return int(keyframeSize.Load())
}

// hostProcessor resolves the active size once per call.
func hostProcessor() (*Processor, bool) {
	l, ok := layout.ForSize(KeyframeSize())
	if !ok {
		return nil, false
	}
	return newProcessor(l), true
}

// CurveConvert converts c with the active layout.
func CurveConvert(c *Curve, mode InterpolationMode) {
	if p, ok := hostProcessor(); ok {
		p.ConvertCurve(c, mode)
	}
}

// CurveReduce reduces c when the active size names a layout.
func CurveReduce(c *Curve, tolerance float32) {
	if p, ok := hostProcessor(); ok {
		p.ReduceCurve(c, tolerance)
	}
}

// AnimationConvert converts every curve of a with the active layout.
func AnimationConvert(a *Animation, mode InterpolationMode) {
	if p, ok := hostProcessor(); ok {
		p.ConvertAnimation(a, mode)
	}
}

// AnimationReduce reduces every curve of a.
func AnimationReduce(a *Animation, tolerance float32) {
	if p, ok := hostProcessor(); ok {
		p.ReduceAnimation(a, tolerance)
	}
}

// ClipConvert converts every animation of clip in parallel.
func ClipConvert(clip *Clip, mode InterpolationMode) {
	if p, ok := hostProcessor(); ok {
		p.ConvertClip(clip, mode)
	}
}

// ClipReduce reduces every animation of clip in parallel.
func ClipReduce(clip *Clip, tolerance float32) {
	if p, ok := hostProcessor(); ok {
		p.ReduceClip(clip, tolerance)
	}
}

// CurveNumElements returns the channel count of c.
func CurveNumElements(c *Curve) int {
	if c == nil {
		return 0
	}
	return c.NumElements()
}

// CurveNumKeys returns the key count of channel element of c.
func CurveNumKeys(c *Curve, element int) int {
	if c == nil {
		return 0
	}
	return c.NumKeys(element)
}

// CurveCopy copies the raw records of channel element into dst. Out of
// range channels and short buffers copy nothing.
func CurveCopy(c *Curve, element int, dst []byte) {
	if c == nil {
		return
	}
	_, _ = c.CopyKeys(element, dst)
}
