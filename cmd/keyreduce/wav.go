package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	keyframe "github.com/tphakala/go-keyframe-reducer"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
}

// openWAVInput opens and validates a WAV file.
func openWAVInput(path string) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(decoder.BitDepth),
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// fullScale returns the magnitude of a full scale sample at bitDepth.
func fullScale(bitDepth int) float32 {
	if bitDepth <= 1 {
		return 1
	}
	return float32(int64(1) << (bitDepth - 1))
}

// loadWAVClip imports every PCM channel of path as a float curve sampled at
// the file rate, keeping every stride-th frame. Sample values are scaled to
// [-1, 1).
func loadWAVClip(path string, stride int) (*keyframe.Clip, *wavInputInfo, error) {
	if stride < 1 {
		return nil, nil, fmt.Errorf("stride must be at least 1, got %d", stride)
	}

	in, err := openWAVInput(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = in.Close() }()

	if in.rate <= 0 || in.channels <= 0 {
		return nil, nil, fmt.Errorf("invalid WAV format: %d Hz, %d channels", in.rate, in.channels)
	}

	buf, err := in.decoder.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	clip := &keyframe.Clip{Name: name}
	anim := &keyframe.Animation{Name: "audio"}
	for ch := range in.channels {
		anim.Curves = append(anim.Curves, keyframe.NewCurve(
			fmt.Sprintf("channel%d", ch),
			channelSamples(buf, ch, in.channels, in.rate, in.bitDepth, stride),
		))
	}
	clip.Animations = append(clip.Animations, anim)

	return clip, in, nil
}

// channelSamples de-interleaves one channel of buf into timed samples.
func channelSamples(buf *audio.IntBuffer, ch, channels, rate, bitDepth, stride int) []keyframe.Sample[float32] {
	frames := len(buf.Data) / channels
	scale := 1 / fullScale(bitDepth)

	samples := make([]keyframe.Sample[float32], 0, (frames+stride-1)/stride)
	for f := 0; f < frames; f += stride {
		samples = append(samples, keyframe.Sample[float32]{
			Time:  float32(f) / float32(rate),
			Value: float32(buf.Data[f*channels+ch]) * scale,
		})
	}
	return samples
}
