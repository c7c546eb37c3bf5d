// Package reduce removes keys that a channel's own Hermite reconstruction
// can recover within an absolute value tolerance.
package reduce

import (
	"math"

	"github.com/tphakala/go-keyframe-reducer/internal/layout"
	"github.com/tphakala/go-keyframe-reducer/internal/tangent"
)

// Evaluate returns the cubic Hermite value at time t between k1 and k2,
// using k1's out tangent and k2's in tangent. A constant out tangent on k1
// holds k1's value across the segment.
func Evaluate(k1, k2 *layout.Key, t float32) float32 {
	if tangent.IsConstant(k1.OutTangent) {
		return k1.Value
	}

	kd := k2.Time - k1.Time
	vd := k2.Value - k1.Value
	x := (t - k1.Time) / kd

	a := -2*vd + kd*(k1.OutTangent+k2.InTangent)
	b := 3*vd - kd*(2*k1.OutTangent+k2.InTangent)
	c := kd * k1.OutTangent

	return k1.Value + x*(x*(a*x+b)+c)
}

// IsRedundant reports whether comp can be dropped from between k1 and k2.
// The segment k1..k2 must reproduce comp's value within eps, and at the
// midpoint of k1..comp it must agree with the segment k1..comp.
func IsRedundant(k1, k2, comp *layout.Key, eps float32) bool {
	v := Evaluate(k1, k2, comp.Time)
	if abs(comp.Value-v) > eps {
		return false
	}

	t := k1.Time + (comp.Time-k1.Time)*0.5
	short := Evaluate(k1, comp, t)
	long := Evaluate(k1, k2, t)

	return abs(short-long) <= eps
}

// Keys reduces one channel and returns the kept keys in order. Channels of
// two keys or fewer are returned unchanged. The first and last keys are
// always kept.
//
// The scan tests every key against the last emitted anchor and the key that
// follows it. The anchor only moves when a key is found to be needed.
func Keys(keys []layout.Key, eps float32) []layout.Key {
	n := len(keys)
	if n <= 2 {
		return keys
	}

	out := make([]layout.Key, 0, n)
	k := 0
	for i := 1; i < n-1; i++ {
		if !IsRedundant(&keys[k], &keys[i+1], &keys[i], eps) {
			out = append(out, keys[k])
			k = i
		}
	}
	out = append(out, keys[k], keys[n-1])

	return out
}

// Buffer reduces the channel held in b and returns a new, shorter buffer of
// the same layout. Buffers of two records or fewer are returned as is.
func Buffer(b *layout.Buffer, eps float32) *layout.Buffer {
	if b.Len() <= 2 {
		return b
	}
	keys := b.Keys()
	kept := Keys(keys, eps)
	if len(kept) == len(keys) {
		return b
	}
	return layout.FromKeys(b.Layout(), kept)
}

// Sample evaluates a whole channel at time t. Times before the first key or
// after the last key clamp to the end values.
func Sample(keys []layout.Key, t float32) float32 {
	n := len(keys)
	switch {
	case n == 0:
		return 0
	case t <= keys[0].Time:
		return keys[0].Value
	case t >= keys[n-1].Time:
		return keys[n-1].Value
	}

	// Last key at or before t; keys[j+1].Time > t, so the segment is not empty.
	j := segment(keys, t)
	return Evaluate(&keys[j], &keys[j+1], t)
}

// segment returns the index of the last key whose time is <= t. Callers
// guarantee keys[0].Time <= t < keys[len(keys)-1].Time.
func segment(keys []layout.Key, t float32) int {
	lo, hi := 0, len(keys)-1
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if keys[mid].Time <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
