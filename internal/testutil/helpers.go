// Package testutil provides reusable test helpers for key channels.
package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-keyframe-reducer/internal/layout"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-6
	AngleTolerance   = 1e-3
)

// KeysOf builds bare keys from parallel time and value slices.
func KeysOf(times, values []float32) []layout.Key {
	keys := make([]layout.Key, len(times))
	for i := range times {
		keys[i] = layout.Key{Time: times[i], Value: values[i]}
	}
	return keys
}

// Line returns n keys one time unit apart on value = slope*time.
func Line(n int, slope float32) []layout.Key {
	keys := make([]layout.Key, n)
	for i := range keys {
		keys[i] = layout.Key{Time: float32(i), Value: slope * float32(i)}
	}
	return keys
}

// RandomWalk returns n keys with strictly increasing times and a bounded
// random walk for values. The same seed always yields the same channel.
func RandomWalk(seed uint64, n int) []layout.Key {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	keys := make([]layout.Key, n)
	var t, v float32
	for i := range keys {
		t += 0.01 + r.Float32()*0.1
		v += r.Float32()*2 - 1
		keys[i] = layout.Key{Time: t, Value: v}
	}
	return keys
}

// AssertTimesIncreasing verifies that key times strictly increase.
func AssertTimesIncreasing(t *testing.T, keys []layout.Key, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(keys); i++ {
		if keys[i].Time <= keys[i-1].Time {
			return assert.Fail(t, "times not increasing",
				"keys[%d].Time=%f <= keys[%d].Time=%f", i, keys[i].Time, i-1, keys[i-1].Time)
		}
	}
	return true
}

// AssertNoNaN verifies that no key field is NaN and that only the constant
// sentinel (+Inf) appears as an infinite tangent.
func AssertNoNaN(t *testing.T, keys []layout.Key, msgAndArgs ...any) bool {
	t.Helper()
	for i, k := range keys {
		for _, v := range []float32{k.Time, k.Value, k.InTangent, k.OutTangent, k.InWeight, k.OutWeight} {
			f := float64(v)
			if math.IsNaN(f) {
				return assert.Fail(t, "found NaN", "keys[%d] has a NaN field: %+v", i, k)
			}
			if math.IsInf(f, -1) {
				return assert.Fail(t, "found -Inf", "keys[%d] has a -Inf field: %+v", i, k)
			}
		}
		if math.IsInf(float64(k.Time), 0) || math.IsInf(float64(k.Value), 0) {
			return assert.Fail(t, "found Inf", "keys[%d] has an infinite time or value", i)
		}
	}
	return true
}

// AssertSubsequence verifies that every key in sub appears in full in the
// same order.
func AssertSubsequence(t *testing.T, full, sub []layout.Key, msgAndArgs ...any) bool {
	t.Helper()
	j := 0
	for _, k := range sub {
		for j < len(full) && full[j] != k {
			j++
		}
		if j == len(full) {
			return assert.Fail(t, "not a subsequence", "key %+v not found in order", k)
		}
		j++
	}
	return true
}

// AssertEndpointsKept verifies that the first and last keys survived.
func AssertEndpointsKept(t *testing.T, full, sub []layout.Key, msgAndArgs ...any) bool {
	t.Helper()
	if len(full) == 0 {
		return assert.Empty(t, sub, msgAndArgs...)
	}
	if !assert.NotEmpty(t, sub, msgAndArgs...) {
		return false
	}
	return assert.Equal(t, full[0], sub[0], msgAndArgs...) &&
		assert.Equal(t, full[len(full)-1], sub[len(sub)-1], msgAndArgs...)
}
