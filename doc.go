// Package keyframe converts sampled animation curves to Hermite keyframes and
// drops the keys a curve can reconstruct within a tolerance.
//
// # Features
//
//   - Three target interpolations: [Smooth] (clamped auto tangents), [Linear]
//     and [Constant] (step)
//   - Scalar, 2/3/4-vector and quaternion curves; rotations targeting linear or
//     constant interpolation become continuous ZXY Euler angles in degrees
//   - Four physical key record layouts, selected by record size
//   - Greedy reduction verified against the interpolation's own Hermite
//     reconstruction, keeping first and last keys
//   - Parallel clip processing in fixed blocks of animations
//   - Optional SIMD acceleration of error metrics via github.com/tphakala/simd
//
// # Quick Start
//
// For a one-shot conversion and reduction of a single curve:
//
//	c := keyframe.NewCurve("opacity", []keyframe.Sample[float32]{
//	    {Time: 0, Value: 0}, {Time: 1, Value: 0.5}, {Time: 2, Value: 1},
//	})
//	if err := keyframe.ConvertAndReduce(c, keyframe.Linear, 0.001, keyframe.LayoutEditorWeighted); err != nil {
//	    log.Fatal(err)
//	}
//
// For whole clips with a reusable processor:
//
//	p, err := keyframe.New(&keyframe.Config{
//	    KeySize:        32,
//	    EnableParallel: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.ConvertClip(clip, keyframe.Smooth)
//	p.ReduceClip(clip, 0.01)
//
// # Key Layouts
//
// Every layout stores time, value, in tangent and out tangent. The others add
// optional fields:
//
//   - [LayoutRuntime] (16 bytes): no optional fields
//   - [LayoutEditor] (20 bytes): tangent mode word
//   - [LayoutRuntimeWeighted] (28 bytes): weighted mode and both weights
//   - [LayoutEditorWeighted] (32 bytes): all of the above
//
// Fields a layout does not store read as zero. Because layouts without a
// tangent mode word cannot record the target mode, their tangents stay zero.
//
// # Host Boundary
//
// Hosts that select the layout through a process-wide record size use
// [SetKeyframeSize] together with [CurveConvert], [CurveReduce] and the
// animation and clip variants. Every such call does nothing while the size
// matches no layout.
//
// # Thread Safety
//
// A [Processor] holds no mutable state. Distinct curves may be processed
// concurrently; a single curve must not be used from more than one goroutine
// while it is being converted or reduced.
package keyframe
