package reduce

import (
	"github.com/tphakala/go-keyframe-reducer/internal/layout"
	"github.com/tphakala/go-keyframe-reducer/internal/simdops"
)

// Stats describes how well a reduced channel reconstructs the original.
type Stats struct {
	KeysBefore int
	KeysAfter  int

	// MaxError and RMSError are absolute value errors at the original key times.
	MaxError float32
	RMSError float32
}

// Ratio returns KeysAfter / KeysBefore, or 1 for an empty channel.
func (s Stats) Ratio() float64 {
	if s.KeysBefore == 0 {
		return 1
	}
	return float64(s.KeysAfter) / float64(s.KeysBefore)
}

// Measure evaluates reduced at every original key time and reports the
// reconstruction error.
func Measure(original, reduced []layout.Key) Stats {
	s := Stats{
		KeysBefore: len(original),
		KeysAfter:  len(reduced),
	}
	if len(original) == 0 || len(reduced) == 0 {
		return s
	}

	residuals := make([]float32, len(original))
	for i := range original {
		d := abs(Sample(reduced, original[i].Time) - original[i].Value)
		residuals[i] = d
		if d > s.MaxError {
			s.MaxError = d
		}
	}
	s.RMSError = simdops.RMS(residuals)

	return s
}
