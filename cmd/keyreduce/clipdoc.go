package main

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	keyframe "github.com/tphakala/go-keyframe-reducer"
)

// clipDoc is the YAML source document of a clip.
type clipDoc struct {
	Name       string         `yaml:"name"`
	Animations []animationDoc `yaml:"animations"`
}

type animationDoc struct {
	Name   string     `yaml:"name"`
	Curves []curveDoc `yaml:"curves"`
}

type curveDoc struct {
	Name          string      `yaml:"name"`
	Type          string      `yaml:"type"`
	ForceConstant bool        `yaml:"force_constant,omitempty"`
	Samples       []sampleDoc `yaml:"samples"`
}

type sampleDoc struct {
	Time  float32   `yaml:"time"`
	Value []float32 `yaml:"value,flow"`
}

// resultDoc is the YAML output document of a processed clip.
type resultDoc struct {
	RunID      string            `yaml:"run_id"`
	Name       string            `yaml:"name"`
	Mode       string            `yaml:"mode"`
	Tolerance  float32           `yaml:"tolerance"`
	Layout     string            `yaml:"layout"`
	Animations []animationResult `yaml:"animations"`
}

type animationResult struct {
	Name   string        `yaml:"name"`
	Curves []curveResult `yaml:"curves"`
}

type curveResult struct {
	Name     string          `yaml:"name"`
	Type     string          `yaml:"type"`
	Mode     string          `yaml:"mode"`
	Channels []channelResult `yaml:"channels"`
}

type channelResult struct {
	Keys []keyDoc `yaml:"keys"`
}

type keyDoc struct {
	Time        float32 `yaml:"time"`
	Value       float32 `yaml:"value"`
	InTangent   float32 `yaml:"in"`
	OutTangent  float32 `yaml:"out"`
	TangentMode int32   `yaml:"tangent_mode,omitempty"`
	InWeight    float32 `yaml:"in_weight,omitempty"`
	OutWeight   float32 `yaml:"out_weight,omitempty"`
}

// loadClipYAML reads a clip document from path.
func loadClipYAML(path string) (*keyframe.Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	var doc clipDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse clip %s: %w", path, err)
	}
	return doc.clip()
}

func (d *clipDoc) clip() (*keyframe.Clip, error) {
	clip := &keyframe.Clip{Name: d.Name}
	for _, ad := range d.Animations {
		a := &keyframe.Animation{Name: ad.Name}
		for _, cd := range ad.Curves {
			c, err := cd.curve()
			if err != nil {
				return nil, fmt.Errorf("animation %q: %w", ad.Name, err)
			}
			a.Curves = append(a.Curves, c)
		}
		clip.Animations = append(clip.Animations, a)
	}
	return clip, nil
}

func (d *curveDoc) curve() (*keyframe.Curve, error) {
	var (
		c   *keyframe.Curve
		err error
	)
	switch d.Type {
	case "int":
		c, err = buildCurve(d, 1, func(v []float32) int32 { return int32(math.Round(float64(v[0]))) })
	case "float", "":
		c, err = buildCurve(d, 1, func(v []float32) float32 { return v[0] })
	case "float2":
		c, err = buildCurve(d, 2, func(v []float32) keyframe.Vec2 { return keyframe.Vec2{v[0], v[1]} })
	case "float3":
		c, err = buildCurve(d, 3, func(v []float32) keyframe.Vec3 { return keyframe.Vec3{v[0], v[1], v[2]} })
	case "float4":
		c, err = buildCurve(d, 4, func(v []float32) keyframe.Vec4 { return keyframe.Vec4{v[0], v[1], v[2], v[3]} })
	case "quaternion":
		c, err = buildCurve(d, 4, func(v []float32) keyframe.Quat {
			return keyframe.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}
		})
	default:
		return nil, fmt.Errorf("curve %q: unknown type %q", d.Name, d.Type)
	}
	if err != nil {
		return nil, err
	}
	c.ForceConstant = d.ForceConstant
	return c, nil
}

func buildCurve[V keyframe.Value](d *curveDoc, components int, value func([]float32) V) (*keyframe.Curve, error) {
	samples := make([]keyframe.Sample[V], len(d.Samples))
	for i, s := range d.Samples {
		if len(s.Value) != components {
			return nil, fmt.Errorf("curve %q sample %d: want %d components, got %d",
				d.Name, i, components, len(s.Value))
		}
		if i > 0 && s.Time < d.Samples[i-1].Time {
			return nil, fmt.Errorf("curve %q sample %d: time %v goes backwards", d.Name, i, s.Time)
		}
		samples[i] = keyframe.Sample[V]{Time: s.Time, Value: value(s.Value)}
	}
	return keyframe.NewCurve(d.Name, samples), nil
}

// newResultDoc captures the keys of a processed clip.
func newResultDoc(runID string, clip *keyframe.Clip, mode keyframe.InterpolationMode, tolerance float32, l keyframe.KeyLayout) *resultDoc {
	doc := &resultDoc{
		RunID:     runID,
		Name:      clip.Name,
		Mode:      mode.String(),
		Tolerance: tolerance,
		Layout:    l.Name(),
	}
	for _, a := range clip.Animations {
		ar := animationResult{Name: a.Name}
		for _, c := range a.Curves {
			cr := curveResult{Name: c.Name, Type: c.Type().String(), Mode: c.Mode().String()}
			for i := range c.NumElements() {
				var ch channelResult
				for _, k := range c.Keys(i) {
					ch.Keys = append(ch.Keys, keyDoc{
						Time:        k.Time,
						Value:       k.Value,
						InTangent:   k.InTangent,
						OutTangent:  k.OutTangent,
						TangentMode: k.TangentMode,
						InWeight:    k.InWeight,
						OutWeight:   k.OutWeight,
					})
				}
				cr.Channels = append(cr.Channels, ch)
			}
			ar.Curves = append(ar.Curves, cr)
		}
		doc.Animations = append(doc.Animations, ar)
	}
	return doc
}

// writeResultYAML writes doc to path.
func writeResultYAML(path string, doc *resultDoc) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode result: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode result: %w", err)
	}
	return file.Close()
}
