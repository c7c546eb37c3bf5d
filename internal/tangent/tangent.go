// Package tangent computes keyframe tangents from per-key tangent modes.
//
// A tangent mode word packs a broken flag (bit 0), the left tangent mode
// (bits 1-4) and the right tangent mode (bits 5-8). The left mode drives the
// in tangent, the right mode drives the out tangent.
package tangent

import (
	"math"

	"github.com/tphakala/go-keyframe-reducer/internal/layout"
)

// Mode is the interpolation rule of one side of a key.
type Mode int32

const (
	ModeFree        Mode = 0
	ModeAuto        Mode = 1
	ModeLinear      Mode = 2
	ModeConstant    Mode = 3
	ModeClampedAuto Mode = 4
)

// Bit layout of the tangent mode word.
const (
	BrokenMask int32 = 1 << 0
	LeftMask   int32 = 1<<1 | 1<<2 | 1<<3 | 1<<4
	RightMask  int32 = 1<<5 | 1<<6 | 1<<7 | 1<<8
)

const (
	leftShift  = 1
	rightShift = 5
)

// Interpolation is the target interpolation of a whole channel.
type Interpolation int

const (
	InterpolationSmooth Interpolation = iota
	InterpolationLinear
	InterpolationConstant
)

// Numeric constants shared with the host's curve code.
const (
	timeEpsilon   = 0.00001
	curveEpsilon  = 0.00001
	DefaultWeight = float32(1.0 / 3.0)
	smoothBias    = 0.5
)

var infinity = float32(math.Inf(1))

// Infinity is the constant-interpolation sentinel stored in a tangent.
func Infinity() float32 {
	return infinity
}

// IsConstant reports whether a tangent holds the constant sentinel.
func IsConstant(v float32) bool {
	return v == infinity
}

// LeftMode extracts the left (in) tangent mode of k.
func LeftMode(l layout.Layout, k *layout.Key) Mode {
	return Mode((l.TangentMode(k) & LeftMask) >> leftShift)
}

// RightMode extracts the right (out) tangent mode of k.
func RightMode(l layout.Layout, k *layout.Key) Mode {
	return Mode((l.TangentMode(k) & RightMask) >> rightShift)
}

// Pack builds a tangent mode word.
func Pack(left, right Mode, broken bool) int32 {
	var tm int32
	if broken {
		tm |= BrokenMask
	}
	tm |= (int32(left) << leftShift) & LeftMask
	tm |= (int32(right) << rightShift) & RightMask
	return tm
}

// ModeFor maps a channel interpolation to the per-side tangent mode.
func ModeFor(im Interpolation) Mode {
	switch im {
	case InterpolationLinear:
		return ModeLinear
	case InterpolationConstant:
		return ModeConstant
	default:
		return ModeClampedAuto
	}
}

// LinearTangent returns the slope from keys[i1] to keys[i2], or 0 when the
// keys are closer than the time epsilon.
func LinearTangent(keys []layout.Key, i1, i2 int) float32 {
	k1 := &keys[i1]
	k2 := &keys[i2]

	dt := k2.Time - k1.Time
	if abs(dt) < timeEpsilon {
		return 0
	}
	return (k2.Value - k1.Value) / dt
}

func safeDiv(y, x float32) float32 {
	if abs(x) > curveEpsilon {
		return y / x
	}
	return 0
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

// SmoothTangents assigns a clamped-auto tangent to keys[index], shared by
// both sides. End keys get a flat tangent. Weights are reset to the default
// on layouts that store them.
func SmoothTangents(l layout.Layout, keys []layout.Key, index int, bias float32) {
	if len(keys) < 2 {
		return
	}

	key := &keys[index]
	if index == 0 || index == len(keys)-1 {
		key.InTangent, key.OutTangent = 0, 0
		l.SetInWeight(key, DefaultWeight)
		l.SetOutWeight(key, DefaultWeight)
		return
	}

	prev := &keys[index-1]
	next := &keys[index+1]

	dx1 := key.Time - prev.Time
	dy1 := key.Value - prev.Value
	dx2 := next.Time - key.Time
	dy2 := next.Value - key.Value

	dx := dx1 + dx2
	dy := dy1 + dy2

	m1 := safeDiv(dy1, dx1)
	m2 := safeDiv(dy2, dx2)
	m := safeDiv(dy, dx)

	var mp float32
	if (m1 > 0 && m2 > 0) || (m1 < 0 && m2 < 0) {
		lowerBias := (1 - bias) * 0.5
		upperBias := lowerBias + bias

		lowerDy := dy * lowerBias
		upperDy := dy * upperBias

		switch {
		case abs(dy1) >= abs(upperDy):
			b := safeDiv(dy1-upperDy, lowerDy)
			mp = (1 - b) * m
		case abs(dy1) < abs(lowerDy):
			b := safeDiv(dy1, lowerDy)
			mp = b * m
		default:
			mp = m
		}
	}
	key.InTangent, key.OutTangent = mp, mp

	l.SetInWeight(key, DefaultWeight)
	l.SetOutWeight(key, DefaultWeight)
}

// UpdateTangents recomputes the tangents of keys[index] from its stored
// tangent mode bits and its neighbors' times and values.
func UpdateTangents(l layout.Layout, keys []layout.Key, index int) {
	key := &keys[index]
	left := LeftMode(l, key)
	right := RightMode(l, key)

	if left == ModeLinear && index >= 1 {
		key.InTangent = LinearTangent(keys, index, index-1)
	}
	if right == ModeLinear && index+1 < len(keys) {
		key.OutTangent = LinearTangent(keys, index, index+1)
	}

	if left == ModeClampedAuto || right == ModeClampedAuto {
		SmoothTangents(l, keys, index, smoothBias)
	}

	if left == ModeConstant {
		key.InTangent = infinity
	}
	if right == ModeConstant {
		key.OutTangent = infinity
	}
}

// Apply sets both tangent modes of every key to the mode matching im, marks
// the keys broken, resets weights and recomputes all tangents in order.
func Apply(l layout.Layout, keys []layout.Key, im Interpolation) {
	mode := int32(ModeFor(im))

	for i := range keys {
		k := &keys[i]
		tm := l.TangentMode(k)
		tm |= BrokenMask
		tm &^= LeftMask
		tm |= mode << leftShift
		tm &^= RightMask
		tm |= mode << rightShift
		l.SetTangentMode(k, tm)

		l.SetInWeight(k, DefaultWeight)
		l.SetOutWeight(k, DefaultWeight)
	}

	for i := range keys {
		UpdateTangents(l, keys, i)
	}
}
