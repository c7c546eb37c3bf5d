package keyframe

import (
	"fmt"
	"math"

	"github.com/tphakala/go-keyframe-reducer/internal/convert"
	"github.com/tphakala/go-keyframe-reducer/internal/reduce"
)

// ConvertAndReduce converts c to mode with layout l, then reduces it with
// tolerance.
//
// Example:
//
//	c := keyframe.NewCurve("fade", samples)
//	err := keyframe.ConvertAndReduce(c, keyframe.Linear, 0.001, keyframe.LayoutEditorWeighted)
func ConvertAndReduce(c *Curve, mode InterpolationMode, tolerance float32, l KeyLayout) error {
	if l == nil {
		return fmt.Errorf("%w: layout is nil", ErrInvalidConfig)
	}
	if c == nil {
		return fmt.Errorf("%w: curve is nil", ErrInvalidConfig)
	}

	p := newProcessor(l)
	p.ConvertCurve(c, mode)
	p.ReduceCurve(c, tolerance)
	return nil
}

// Measure compares every channel of c against a fresh conversion of its
// source samples and reports the reconstruction error per channel. It
// returns nil for a curve that was never converted.
func Measure(c *Curve) []Stats {
	if c == nil || c.layout == nil {
		return nil
	}

	original := convert.Curve(c.layout, &c.source, c.mode.interpolation())
	stats := make([]Stats, len(c.channels))
	for i := range c.channels {
		var want []Key
		if i < len(original) {
			want = original[i].Keys()
		}
		stats[i] = reduce.Measure(want, c.channels[i].Keys())
	}
	return stats
}

// SummaryStats folds per channel stats into one: key counts add up, the
// maximum error is the largest, and the RMS error is weighted by the
// original key counts.
func SummaryStats(stats []Stats) Stats {
	var out Stats
	var sumSq float64
	for _, s := range stats {
		out.KeysBefore += s.KeysBefore
		out.KeysAfter += s.KeysAfter
		out.MaxError = max(out.MaxError, s.MaxError)
		sumSq += float64(s.RMSError) * float64(s.RMSError) * float64(s.KeysBefore)
	}
	if out.KeysBefore > 0 {
		out.RMSError = float32(math.Sqrt(sumSq / float64(out.KeysBefore)))
	}
	return out
}
