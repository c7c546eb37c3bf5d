// Package convert fills per-channel key buffers from sampled curve values
// and finalizes their tangents for a target interpolation.
package convert

import (
	"github.com/tphakala/go-keyframe-reducer/internal/layout"
	"github.com/tphakala/go-keyframe-reducer/internal/rotation"
	"github.com/tphakala/go-keyframe-reducer/internal/tangent"
)

// DataType is the value type of a sampled curve.
type DataType int

const (
	TypeInt DataType = iota
	TypeFloat
	TypeFloat2
	TypeFloat3
	TypeFloat4
	TypeQuaternion
)

// Components returns the number of value components of d.
func (d DataType) Components() int {
	switch d {
	case TypeFloat2:
		return 2
	case TypeFloat3:
		return 3
	case TypeFloat4, TypeQuaternion:
		return 4
	default:
		return 1
	}
}

func (d DataType) String() string {
	switch d {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeFloat2:
		return "float2"
	case TypeFloat3:
		return "float3"
	case TypeFloat4:
		return "float4"
	case TypeQuaternion:
		return "quaternion"
	default:
		return "unknown"
	}
}

// Source is a read-only view of one sampled curve. Values holds the
// components of each sample in order; unused trailing components are
// ignored. Quaternions are stored as (x, y, z, w).
type Source struct {
	Type          DataType
	Times         []float32
	Values        [][4]float32
	ForceConstant bool
}

// Len returns the number of usable samples.
func (s *Source) Len() int {
	return min(len(s.Times), len(s.Values))
}

// Resolve returns the interpolation a curve is converted with.
func Resolve(im tangent.Interpolation, forceConstant bool) tangent.Interpolation {
	if forceConstant {
		return tangent.InterpolationConstant
	}
	return im
}

// Channels returns how many channel buffers a curve of type d produces when
// converted to im. Rotations become three Euler channels unless they keep
// smooth interpolation.
func Channels(d DataType, im tangent.Interpolation) int {
	if d == TypeQuaternion && im != tangent.InterpolationSmooth {
		return 3
	}
	return d.Components()
}

// Curve converts src into one key buffer per channel using layout l.
// A zero-length source produces zero-length buffers.
func Curve(l layout.Layout, src *Source, im tangent.Interpolation) []*layout.Buffer {
	im = Resolve(im, src.ForceConstant)
	n := src.Len()

	channels := channelValues(src, n, im)
	out := make([]*layout.Buffer, len(channels))

	keys := make([]layout.Key, n)
	for c, values := range channels {
		for i := range n {
			keys[i] = layout.Key{Time: src.Times[i], Value: values[i]}
		}
		tangent.Apply(l, keys, im)
		out[c] = layout.FromKeys(l, keys)
	}

	return out
}

func channelValues(src *Source, n int, im tangent.Interpolation) [][]float32 {
	if src.Type == TypeQuaternion && im != tangent.InterpolationSmooth {
		x, y, z := rotation.EulerDegrees(src.Values[:n])
		return [][]float32{x, y, z}
	}

	channels := make([][]float32, src.Type.Components())
	for c := range channels {
		values := make([]float32, n)
		for i := range n {
			values[i] = src.Values[i][c]
		}
		channels[c] = values
	}
	return channels
}
