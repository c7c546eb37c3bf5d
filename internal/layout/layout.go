// Package layout describes the physical keyframe records a host stores per channel.
//
// Every record starts with time, value, in tangent and out tangent (four float32).
// Layouts differ only in which optional fields follow: the editor tangent mode
// word and the weighted tangent block (mode, in weight, out weight). Fields a
// layout does not store read as zero and writes to them are discarded.
package layout

import (
	"encoding/binary"
	"math"
)

// Key is the in-memory form of one keyframe. It carries every field any
// layout can store; which of them survive encoding is decided by the Layout.
type Key struct {
	Time         float32
	Value        float32
	InTangent    float32
	OutTangent   float32
	TangentMode  int32
	WeightedMode int32
	InWeight     float32
	OutWeight    float32
}

// Layout is the capability interface of one physical key record.
// Optional field accessors honor the record shape: getters of absent
// fields return zero, setters of absent fields do nothing.
type Layout interface {
	// Name is a short identifier, e.g. "editor-weighted".
	Name() string

	// Size is the record size in bytes.
	Size() int

	// HasTangentMode reports whether the tangent mode word is stored.
	HasTangentMode() bool

	// HasWeights reports whether the weighted tangent block is stored.
	HasWeights() bool

	TangentMode(k *Key) int32
	SetTangentMode(k *Key, v int32)
	WeightedMode(k *Key) int32
	SetWeightedMode(k *Key, v int32)
	InWeight(k *Key) float32
	SetInWeight(k *Key, v float32)
	OutWeight(k *Key) float32
	SetOutWeight(k *Key, v float32)

	// Encode writes k into dst, which must hold at least Size() bytes.
	Encode(dst []byte, k *Key)

	// Decode reads one record from src into k. Absent fields are zeroed.
	Decode(src []byte, k *Key)
}

// Record sizes in bytes.
const (
	baseSize            = 16
	tangentModeSize     = 4
	weightBlockSize     = 12
	RuntimeSize         = baseSize
	EditorSize          = baseSize + tangentModeSize
	RuntimeWeightedSize = baseSize + weightBlockSize
	EditorWeightedSize  = baseSize + tangentModeSize + weightBlockSize
)

// Field offsets shared by every record.
const (
	offTime       = 0
	offValue      = 4
	offInTangent  = 8
	offOutTangent = 12
)

var le = binary.LittleEndian

func putFloat(b []byte, off int, v float32) {
	le.PutUint32(b[off:], math.Float32bits(v))
}

func getFloat(b []byte, off int) float32 {
	return math.Float32frombits(le.Uint32(b[off:]))
}

func putInt(b []byte, off int, v int32) {
	le.PutUint32(b[off:], uint32(v))
}

func getInt(b []byte, off int) int32 {
	return int32(le.Uint32(b[off:]))
}

func encodeBase(dst []byte, k *Key) {
	putFloat(dst, offTime, k.Time)
	putFloat(dst, offValue, k.Value)
	putFloat(dst, offInTangent, k.InTangent)
	putFloat(dst, offOutTangent, k.OutTangent)
}

func decodeBase(src []byte, k *Key) {
	*k = Key{
		Time:       getFloat(src, offTime),
		Value:      getFloat(src, offValue),
		InTangent:  getFloat(src, offInTangent),
		OutTangent: getFloat(src, offOutTangent),
	}
}

// noTangentMode is embedded by layouts without the tangent mode word.
type noTangentMode struct{}

func (noTangentMode) HasTangentMode() bool { return false }
func (noTangentMode) TangentMode(*Key) int32 { return 0 }
func (noTangentMode) SetTangentMode(*Key, int32) {}

// storedTangentMode is embedded by layouts that keep the tangent mode word.
type storedTangentMode struct{}

func (storedTangentMode) HasTangentMode() bool { return true }
func (storedTangentMode) TangentMode(k *Key) int32 { return k.TangentMode }
func (storedTangentMode) SetTangentMode(k *Key, v int32) { k.TangentMode = v }

// noWeights is embedded by layouts without the weighted tangent block.
type noWeights struct{}

func (noWeights) HasWeights() bool { return false }
func (noWeights) WeightedMode(*Key) int32 { return 0 }
func (noWeights) SetWeightedMode(*Key, int32) {}
func (noWeights) InWeight(*Key) float32 { return 0 }
func (noWeights) SetInWeight(*Key, float32) {}
func (noWeights) OutWeight(*Key) float32 { return 0 }
func (noWeights) SetOutWeight(*Key, float32) {}

// storedWeights is embedded by layouts that keep the weighted tangent block.
type storedWeights struct{}

func (storedWeights) HasWeights() bool { return true }
func (storedWeights) WeightedMode(k *Key) int32 { return k.WeightedMode }
func (storedWeights) SetWeightedMode(k *Key, v int32) { k.WeightedMode = v }
func (storedWeights) InWeight(k *Key) float32 { return k.InWeight }
func (storedWeights) SetInWeight(k *Key, v float32) { k.InWeight = v }
func (storedWeights) OutWeight(k *Key) float32 { return k.OutWeight }
func (storedWeights) SetOutWeight(k *Key, v float32) { k.OutWeight = v }

func encodeWeights(dst []byte, off int, k *Key) {
	putInt(dst, off, k.WeightedMode)
	putFloat(dst, off+4, k.InWeight)
	putFloat(dst, off+8, k.OutWeight)
}

func decodeWeights(src []byte, off int, k *Key) {
	k.WeightedMode = getInt(src, off)
	k.InWeight = getFloat(src, off+4)
	k.OutWeight = getFloat(src, off+8)
}

// runtimeLayout is the player record: time, value and tangents only.
type runtimeLayout struct {
	noTangentMode
	noWeights
}

func (runtimeLayout) Name() string { return "runtime" }
func (runtimeLayout) Size() int { return RuntimeSize }

func (runtimeLayout) Encode(dst []byte, k *Key) { encodeBase(dst, k) }
func (runtimeLayout) Decode(src []byte, k *Key) { decodeBase(src, k) }

// editorLayout adds the editor-only tangent mode word.
type editorLayout struct {
	storedTangentMode
	noWeights
}

func (editorLayout) Name() string { return "editor" }
func (editorLayout) Size() int { return EditorSize }

func (editorLayout) Encode(dst []byte, k *Key) {
	encodeBase(dst, k)
	putInt(dst, baseSize, k.TangentMode)
}

func (editorLayout) Decode(src []byte, k *Key) {
	decodeBase(src, k)
	k.TangentMode = getInt(src, baseSize)
}

// runtimeWeightedLayout adds weighted tangents to the player record.
type runtimeWeightedLayout struct {
	noTangentMode
	storedWeights
}

func (runtimeWeightedLayout) Name() string { return "runtime-weighted" }
func (runtimeWeightedLayout) Size() int { return RuntimeWeightedSize }

func (runtimeWeightedLayout) Encode(dst []byte, k *Key) {
	encodeBase(dst, k)
	encodeWeights(dst, baseSize, k)
}

func (runtimeWeightedLayout) Decode(src []byte, k *Key) {
	decodeBase(src, k)
	decodeWeights(src, baseSize, k)
}

// editorWeightedLayout stores every field.
type editorWeightedLayout struct {
	storedTangentMode
	storedWeights
}

func (editorWeightedLayout) Name() string { return "editor-weighted" }
func (editorWeightedLayout) Size() int { return EditorWeightedSize }

func (editorWeightedLayout) Encode(dst []byte, k *Key) {
	encodeBase(dst, k)
	putInt(dst, baseSize, k.TangentMode)
	encodeWeights(dst, baseSize+tangentModeSize, k)
}

func (editorWeightedLayout) Decode(src []byte, k *Key) {
	decodeBase(src, k)
	k.TangentMode = getInt(src, baseSize)
	decodeWeights(src, baseSize+tangentModeSize, k)
}

// The four supported layouts.
var (
	Runtime         Layout = runtimeLayout{}
	Editor          Layout = editorLayout{}
	RuntimeWeighted Layout = runtimeWeightedLayout{}
	EditorWeighted  Layout = editorWeightedLayout{}
)

var registry = []Layout{EditorWeighted, RuntimeWeighted, Editor, Runtime}

// ForSize returns the layout whose record is exactly size bytes.
func ForSize(size int) (Layout, bool) {
	for _, l := range registry {
		if l.Size() == size {
			return l, true
		}
	}
	return nil, false
}

// ForName returns the layout with the given Name.
func ForName(name string) (Layout, bool) {
	for _, l := range registry {
		if l.Name() == name {
			return l, true
		}
	}
	return nil, false
}

// All returns the supported layouts, largest record first.
func All() []Layout {
	out := make([]Layout, len(registry))
	copy(out, registry)
	return out
}
