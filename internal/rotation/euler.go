// Package rotation converts quaternion samples to continuous Euler angles.
//
// Angles follow the host convention: ZXY order (roll about Z first, then
// pitch about X, then yaw about Y), reported in degrees.
package rotation

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-keyframe-reducer/internal/simdops"
)

const (
	fullTurn = 360.0
	radToDeg = float32(180.0 / math.Pi)

	// gimbalLimit bounds |sin(pitch)| before the yaw/roll split degenerates.
	gimbalLimit = 0.999999
)

// Number converts an (x, y, z, w) quaternion to gonum's representation.
func Number(q [4]float32) quat.Number {
	return quat.Number{
		Real: float64(q[3]),
		Imag: float64(q[0]),
		Jmag: float64(q[1]),
		Kmag: float64(q[2]),
	}
}

// ToEulerZXY returns the ZXY Euler angles of q in radians. q is normalized
// first; a zero quaternion yields zero angles.
func ToEulerZXY(q quat.Number) r3.Vec {
	n := quat.Abs(q)
	if n == 0 {
		return r3.Vec{}
	}
	q = quat.Scale(1/n, q)

	x, y, z, w := q.Imag, q.Jmag, q.Kmag, q.Real

	sx := 2 * (w*x - y*z)
	sx = math.Max(-1, math.Min(1, sx))

	if math.Abs(sx) < gimbalLimit {
		return r3.Vec{
			X: math.Asin(sx),
			Y: math.Atan2(2*(x*z+w*y), w*w-x*x-y*y+z*z),
			Z: math.Atan2(2*(x*y+w*z), w*w-x*x+y*y-z*z),
		}
	}

	// Pitch at +-90 degrees: fold roll into yaw.
	return r3.Vec{
		X: math.Copysign(math.Pi/2, sx),
		Y: math.Atan2(-2*(x*z-w*y), 1-2*(y*y+z*z)),
		Z: 0,
	}
}

// EulerDegrees converts quaternion samples to per-axis Euler angle tracks in
// degrees and makes them continuous across revolution wraps.
func EulerDegrees(qs [][4]float32) (x, y, z []float32) {
	n := len(qs)
	x = make([]float32, n)
	y = make([]float32, n)
	z = make([]float32, n)

	for i, q := range qs {
		e := ToEulerZXY(Number(q))
		x[i] = float32(e.X)
		y[i] = float32(e.Y)
		z[i] = float32(e.Z)
	}

	ops := simdops.Float32Ops()
	ops.Scale(x, x, radToDeg)
	ops.Scale(y, y, radToDeg)
	ops.Scale(z, z, radToDeg)

	MakeContinuous(x, y, z)
	return x, y, z
}

// MakeContinuous rewrites the angle tracks (degrees) in place so that each
// sample lies within half a turn of its predecessor on every axis.
func MakeContinuous(x, y, z []float32) {
	if len(x) == 0 {
		return
	}

	prev := r3.Vec{X: float64(x[0]), Y: float64(y[0]), Z: float64(z[0])}
	for i := 1; i < len(x); i++ {
		r := r3.Vec{X: float64(x[i]), Y: float64(y[i]), Z: float64(z[i])}
		r = Unwrap(prev, r)
		x[i], y[i], z[i] = float32(r.X), float32(r.Y), float32(r.Z)
		prev = r
	}
}

// Unwrap moves r (degrees) onto the revolution band of prev, picking per
// axis whichever of r, r-360 and r+360 is closest to prev's in-turn angle.
func Unwrap(prev, r r3.Vec) r3.Vec {
	d := r3.Sub(r, mod(prev))

	r.X = nearestTurn(r.X, d.X)
	r.Y = nearestTurn(r.Y, d.Y)
	r.Z = nearestTurn(r.Z, d.Z)

	return r3.Add(r, r3.Scale(fullTurn, turns(prev)))
}

func nearestTurn(v, d float64) float64 {
	x0 := math.Abs(d)
	x1 := math.Abs(d - fullTurn)
	x2 := math.Abs(d + fullTurn)

	switch {
	case x1 < x0:
		return v - fullTurn
	case x2 < x0:
		return v + fullTurn
	default:
		return v
	}
}

// mod reduces every axis into [0, 360).
func mod(v r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(fullTurn, turns(v)))
}

// turns returns the whole number of revolutions per axis (floored).
func turns(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: math.Floor(v.X / fullTurn),
		Y: math.Floor(v.Y / fullTurn),
		Z: math.Floor(v.Z / fullTurn),
	}
}
