package keyframe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/tphakala/go-keyframe-reducer/internal/convert"
	"github.com/tphakala/go-keyframe-reducer/internal/layout"
	"github.com/tphakala/go-keyframe-reducer/internal/parallel"
	"github.com/tphakala/go-keyframe-reducer/internal/reduce"
	"github.com/tphakala/go-keyframe-reducer/internal/tangent"
)

// InterpolationMode is the target interpolation of a conversion. Its values
// are stable small integers so they can cross a host boundary unchanged.
type InterpolationMode int32

const (
	// Smooth gives every key a clamped-auto tangent shared by both sides.
	Smooth InterpolationMode = iota

	// Linear gives every side the slope to its neighbor on that side.
	Linear

	// Constant holds each key's value until the next key.
	Constant
)

func (m InterpolationMode) String() string {
	switch m {
	case Smooth:
		return "smooth"
	case Linear:
		return "linear"
	case Constant:
		return "constant"
	default:
		return fmt.Sprintf("InterpolationMode(%d)", int32(m))
	}
}

// ParseInterpolationMode parses "smooth", "linear" or "constant"
// (case-insensitive).
func ParseInterpolationMode(s string) (InterpolationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "smooth":
		return Smooth, nil
	case "linear":
		return Linear, nil
	case "constant":
		return Constant, nil
	default:
		return Smooth, fmt.Errorf("%w: unknown interpolation mode %q", ErrInvalidConfig, s)
	}
}

// interpolation maps m onto the tangent engine. Unknown values are smooth.
func (m InterpolationMode) interpolation() tangent.Interpolation {
	switch m {
	case Linear:
		return tangent.InterpolationLinear
	case Constant:
		return tangent.InterpolationConstant
	default:
		return tangent.InterpolationSmooth
	}
}

// Key is one decoded key record.
type Key = layout.Key

// KeyLayout describes one physical key record layout.
type KeyLayout = layout.Layout

// Stats describes the reconstruction error of one reduced channel.
type Stats = reduce.Stats

// Supported key layouts.
var (
	// LayoutRuntime stores time, value and both tangents.
	LayoutRuntime KeyLayout = layout.Runtime

	// LayoutEditor adds the tangent mode word.
	LayoutEditor KeyLayout = layout.Editor

	// LayoutRuntimeWeighted adds weighted mode and both weights.
	LayoutRuntimeWeighted KeyLayout = layout.RuntimeWeighted

	// LayoutEditorWeighted stores every field.
	LayoutEditorWeighted KeyLayout = layout.EditorWeighted
)

// LayoutForSize returns the layout whose record is size bytes long.
func LayoutForSize(size int) (KeyLayout, bool) {
	return layout.ForSize(size)
}

// LayoutForName returns the layout with the given name.
func LayoutForName(name string) (KeyLayout, bool) {
	return layout.ForName(name)
}

// Layouts returns every supported layout, largest record first.
func Layouts() []KeyLayout {
	return layout.All()
}

// Common errors returned by the package.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid keyframe configuration")

	// ErrUnknownLayout indicates a key record size that matches no layout.
	ErrUnknownLayout = errors.New("unknown key layout")

	// ErrElementRange indicates a channel index outside the curve.
	ErrElementRange = errors.New("channel index out of range")

	// ErrBufferTooSmall indicates the destination buffer is too small.
	ErrBufferTooSmall = errors.New("destination buffer too small")
)

// Config holds processor configuration.
type Config struct {
	// Layout is the key record layout of every produced channel.
	// When nil, KeySize selects the layout.
	Layout KeyLayout

	// KeySize selects the layout by record size in bytes (16, 20, 28 or 32).
	KeySize int

	// BlockSize is the number of animations per parallel task.
	// Set to 0 to use DefaultBlockSize.
	BlockSize int

	// EnableParallel fans clip work out across animations.
	EnableParallel bool

	// Workers bounds the number of concurrent tasks. Set to 0 for GOMAXPROCS.
	Workers int

	// Logger receives debug output at V(1) per curve and V(2) per channel.
	// The zero value discards everything.
	Logger logr.Logger
}

// DefaultConfig returns a configuration producing fully populated records
// with parallel clip processing.
func DefaultConfig() *Config {
	return &Config{
		Layout:         LayoutEditorWeighted,
		BlockSize:      DefaultBlockSize,
		EnableParallel: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Layout == nil {
		if c.KeySize == 0 {
			return fmt.Errorf("%w: layout or key size is required", ErrInvalidConfig)
		}
		if _, ok := layout.ForSize(c.KeySize); !ok {
			return fmt.Errorf("%w: no layout has %d byte records", ErrUnknownLayout, c.KeySize)
		}
	}

	if c.BlockSize < 0 {
		return fmt.Errorf("%w: block size must not be negative", ErrInvalidConfig)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}

	return nil
}

func (c *Config) resolveLayout() KeyLayout {
	if c.Layout != nil {
		return c.Layout
	}
	l, _ := layout.ForSize(c.KeySize)
	return l
}

// Processor converts and reduces curves with one key layout. A Processor
// holds no mutable state and is safe for concurrent use on distinct curves.
type Processor struct {
	layout    KeyLayout
	blockSize int
	workers   int
	log       logr.Logger
}

// New creates a processor with the specified configuration.
func New(config *Config) (*Processor, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := &Processor{
		layout:    config.resolveLayout(),
		blockSize: config.BlockSize,
		workers:   config.Workers,
		log:       config.Logger,
	}
	if p.blockSize == 0 {
		p.blockSize = DefaultBlockSize
	}
	if !config.EnableParallel {
		p.workers = 1
	}
	if p.log.GetSink() == nil {
		p.log = logr.Discard()
	}

	return p, nil
}

// newProcessor builds a processor without validation for callers that
// already resolved a layout.
func newProcessor(l KeyLayout) *Processor {
	return &Processor{
		layout:    l,
		blockSize: DefaultBlockSize,
		log:       logr.Discard(),
	}
}

// Layout returns the processor's key layout.
func (p *Processor) Layout() KeyLayout {
	return p.layout
}

// ConvertCurve rebuilds every channel of c from its samples with mode as
// the target interpolation. A curve flagged ForceConstant converts to
// Constant regardless of mode.
func (p *Processor) ConvertCurve(c *Curve, mode InterpolationMode) {
	if c == nil {
		return
	}

	im := convert.Resolve(mode.interpolation(), c.ForceConstant)
	c.channels = convert.Curve(p.layout, &c.source, im)
	c.layout = p.layout
	c.mode = modeOf(im)

	p.log.V(1).Info("converted curve",
		"curve", c.Name,
		"type", c.source.Type.String(),
		"mode", c.mode.String(),
		"channels", len(c.channels),
		"keys", c.source.Len(),
		"layout", p.layout.Name(),
	)
}

// ReduceCurve drops keys from every channel of c that its interpolation
// reconstructs within tolerance. Unconverted curves are left alone.
func (p *Processor) ReduceCurve(c *Curve, tolerance float32) {
	if c == nil || len(c.channels) == 0 {
		return
	}

	before, after := 0, 0
	for i, ch := range c.channels {
		reduced := reduce.Buffer(ch, tolerance)
		before += ch.Len()
		after += reduced.Len()

		p.log.V(2).Info("reduced channel",
			"curve", c.Name,
			"channel", i,
			"before", ch.Len(),
			"after", reduced.Len(),
		)
		c.channels[i] = reduced
	}

	p.log.V(1).Info("reduced curve",
		"curve", c.Name,
		"tolerance", tolerance,
		"before", before,
		"after", after,
	)
}

// ConvertAnimation converts every curve of a in order.
func (p *Processor) ConvertAnimation(a *Animation, mode InterpolationMode) {
	if a == nil {
		return
	}
	for _, c := range a.Curves {
		p.ConvertCurve(c, mode)
	}
}

// ReduceAnimation reduces every curve of a in order.
func (p *Processor) ReduceAnimation(a *Animation, tolerance float32) {
	if a == nil {
		return
	}
	for _, c := range a.Curves {
		p.ReduceCurve(c, tolerance)
	}
}

// ConvertClip converts every animation of clip. Animations are processed in
// blocks of BlockSize, concurrently when parallel processing is enabled.
func (p *Processor) ConvertClip(clip *Clip, mode InterpolationMode) {
	if clip == nil {
		return
	}

	p.log.V(1).Info("converting clip", "clip", clip.Name, "animations", len(clip.Animations), "mode", mode.String())
	parallel.ForBlocked(len(clip.Animations), p.blockSize, p.workers, func(begin, end int) {
		for _, a := range clip.Animations[begin:end] {
			p.ConvertAnimation(a, mode)
		}
	})
}

// ReduceClip reduces every animation of clip, partitioned like ConvertClip.
func (p *Processor) ReduceClip(clip *Clip, tolerance float32) {
	if clip == nil {
		return
	}

	p.log.V(1).Info("reducing clip", "clip", clip.Name, "animations", len(clip.Animations), "tolerance", tolerance)
	parallel.ForBlocked(len(clip.Animations), p.blockSize, p.workers, func(begin, end int) {
		for _, a := range clip.Animations[begin:end] {
			p.ReduceAnimation(a, tolerance)
		}
	})
}

func modeOf(im tangent.Interpolation) InterpolationMode {
	switch im {
	case tangent.InterpolationLinear:
		return Linear
	case tangent.InterpolationConstant:
		return Constant
	default:
		return Smooth
	}
}
