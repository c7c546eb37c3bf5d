package keyframe

import (
	"fmt"

	"github.com/tphakala/go-keyframe-reducer/internal/convert"
	"github.com/tphakala/go-keyframe-reducer/internal/layout"
	"github.com/tphakala/go-keyframe-reducer/internal/reduce"
)

// DataType is the value type of a sampled curve.
type DataType = convert.DataType

// Supported curve value types.
const (
	TypeInt        = convert.TypeInt
	TypeFloat      = convert.TypeFloat
	TypeFloat2     = convert.TypeFloat2
	TypeFloat3     = convert.TypeFloat3
	TypeFloat4     = convert.TypeFloat4
	TypeQuaternion = convert.TypeQuaternion
)

// Vec2 is a two component vector value.
type Vec2 [2]float32

// Vec3 is a three component vector value.
type Vec3 [3]float32

// Vec4 is a four component vector value.
type Vec4 [4]float32

// Quat is a unit quaternion rotation value.
type Quat struct {
	X, Y, Z, W float32
}

// Value is the set of sample value types.
type Value interface {
	int32 | float32 | Vec2 | Vec3 | Vec4 | Quat
}

// Sample is one timestamped source value.
type Sample[V Value] struct {
	Time  float32
	Value V
}

// Curve is one animated property: read-only source samples plus the channel
// buffers produced by the last conversion.
type Curve struct {
	Name string

	// ForceConstant converts the curve to Constant whatever mode is requested.
	ForceConstant bool

	source   convert.Source
	layout   KeyLayout
	mode     InterpolationMode
	channels []*layout.Buffer
}

// NewCurve creates a curve from samples ordered by time. The samples are
// copied.
func NewCurve[V Value](name string, samples []Sample[V]) *Curve {
	c := &Curve{
		Name: name,
		source: convert.Source{
			Type:   dataTypeOf[V](),
			Times:  make([]float32, len(samples)),
			Values: make([][4]float32, len(samples)),
		},
	}
	for i, s := range samples {
		c.source.Times[i] = s.Time
		c.source.Values[i] = components(s.Value)
	}
	return c
}

func dataTypeOf[V Value]() DataType {
	var zero V
	switch any(zero).(type) {
	case int32:
		return TypeInt
	case Vec2:
		return TypeFloat2
	case Vec3:
		return TypeFloat3
	case Vec4:
		return TypeFloat4
	case Quat:
		return TypeQuaternion
	default:
		return TypeFloat
	}
}

func components[V Value](v V) [4]float32 {
	switch x := any(v).(type) {
	case int32:
		return [4]float32{float32(x)}
	case float32:
		return [4]float32{x}
	case Vec2:
		return [4]float32{x[0], x[1]}
	case Vec3:
		return [4]float32{x[0], x[1], x[2]}
	case Vec4:
		return [4]float32(x)
	case Quat:
		return [4]float32{x.X, x.Y, x.Z, x.W}
	default:
		return [4]float32{}
	}
}

// Type returns the value type of the source samples.
func (c *Curve) Type() DataType {
	return c.source.Type
}

// NumSamples returns the number of source samples.
func (c *Curve) NumSamples() int {
	return c.source.Len()
}

// Layout returns the key layout of the channels, or nil before conversion.
func (c *Curve) Layout() KeyLayout {
	return c.layout
}

// Mode returns the interpolation the channels were converted with.
func (c *Curve) Mode() InterpolationMode {
	return c.mode
}

// NumElements returns the number of channel buffers.
func (c *Curve) NumElements() int {
	return len(c.channels)
}

// NumKeys returns the key count of channel i, or 0 when i is out of range.
func (c *Curve) NumKeys(i int) int {
	if i < 0 || i >= len(c.channels) {
		return 0
	}
	return c.channels[i].Len()
}

// ByteSize returns the raw size of channel i in bytes.
func (c *Curve) ByteSize(i int) int {
	if i < 0 || i >= len(c.channels) {
		return 0
	}
	return len(c.channels[i].Bytes())
}

// CopyKeys copies the raw records of channel i into dst, which must hold at
// least NumKeys(i) records of the curve's layout. It returns the number of
// bytes written.
func (c *Curve) CopyKeys(i int, dst []byte) (int, error) {
	if i < 0 || i >= len(c.channels) {
		return 0, fmt.Errorf("%w: %d of %d", ErrElementRange, i, len(c.channels))
	}

	ch := c.channels[i]
	if need := len(ch.Bytes()); len(dst) < need {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, need, len(dst))
	}
	return ch.CopyTo(dst), nil
}

// Keys decodes channel i, or returns nil when i is out of range.
func (c *Curve) Keys(i int) []Key {
	if i < 0 || i >= len(c.channels) {
		return nil
	}
	return c.channels[i].Keys()
}

// Evaluate samples channel i at time t using the channel's interpolation.
// Times outside the keys clamp to the end values.
func (c *Curve) Evaluate(i int, t float32) float32 {
	return reduce.Sample(c.Keys(i), t)
}

// Animation is an ordered set of curves.
type Animation struct {
	Name   string
	Curves []*Curve
}

// NumKeys returns the total key count over every channel of every curve.
func (a *Animation) NumKeys() int {
	n := 0
	for _, c := range a.Curves {
		if c == nil {
			continue
		}
		for i := range c.channels {
			n += c.channels[i].Len()
		}
	}
	return n
}

// Clip is an ordered set of animations.
type Clip struct {
	Name       string
	Animations []*Animation
}

// NumKeys returns the total key count of the clip.
func (c *Clip) NumKeys() int {
	n := 0
	for _, a := range c.Animations {
		if a != nil {
			n += a.NumKeys()
		}
	}
	return n
}
