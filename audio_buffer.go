// audio_buffer.go - Interleaved float32 sample buffer primitives

/*
██╗    ██╗ █████╗ ██╗   ██╗███████╗ ██████╗██████╗  █████╗ ███████╗████████╗
██║    ██║██╔══██╗██║   ██║██╔════╝██╔════╝██╔══██╗██╔══██╗██╔════╝╚══██╔══╝
██║ █╗ ██║███████║██║   ██║█████╗  ██║     ██████╔╝███████║█████╗     ██║
██║███╗██║██╔══██║╚██╗ ██╔╝██╔══╝  ██║     ██╔══██╗██╔══██║██╔══╝     ██║
╚███╔███╔╝██║  ██║ ╚████╔╝ ███████╗╚██████╗██║  ██║██║  ██║██║        ██║
 ╚══╝╚══╝ ╚═╝  ╚═╝  ╚═══╝  ╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝        ╚═╝

(c) 2025 - 2026 T-Dawg2147
https://github.com/T-Dawg2147/WaveCraft
License: GPLv3 or later
*/

package main

import "math"

// AudioBuffer owns a contiguous interleaved sample region. It is never
// reallocated during a render pass and is mutated by exactly one side at a
// time. All operations below are deterministic and allocation-free.
type AudioBuffer struct {
	data     []float32
	frames   int
	channels int
}

func NewAudioBuffer(frames, channels int) *AudioBuffer {
	return &AudioBuffer{
		data:     make([]float32, frames*channels),
		frames:   frames,
		channels: channels,
	}
}

// NewAudioBufferFromData wraps an existing interleaved sample slice, e.g. one
// decoded from a WAV file. len(data) must be a multiple of channels.
func NewAudioBufferFromData(data []float32, channels int) *AudioBuffer {
	return &AudioBuffer{
		data:     data,
		frames:   len(data) / channels,
		channels: channels,
	}
}

func (b *AudioBuffer) Data() []float32   { return b.data }
func (b *AudioBuffer) Frames() int       { return b.frames }
func (b *AudioBuffer) Channels() int     { return b.channels }
func (b *AudioBuffer) TotalSamples() int { return b.frames * b.channels }

// Sample returns the sample for one channel of one frame.
func (b *AudioBuffer) Sample(frame, channel int) float32 {
	return b.data[frame*b.channels+channel]
}

func (b *AudioBuffer) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// CopyFrom overwrites min(len, srcLen) samples from src.
func (b *AudioBuffer) CopyFrom(src *AudioBuffer) {
	n := len(b.data)
	if len(src.data) < n {
		n = len(src.data)
	}
	copy(b.data[:n], src.data[:n])
}

// MixFrom adds src scaled by gain over min(len, srcLen) samples. Gains within
// UNITY_GAIN_EPSILON of 1.0 skip the multiply.
func (b *AudioBuffer) MixFrom(src *AudioBuffer, gain float32) {
	n := len(b.data)
	if len(src.data) < n {
		n = len(src.data)
	}
	if gain > 1.0-UNITY_GAIN_EPSILON && gain < 1.0+UNITY_GAIN_EPSILON {
		for i := 0; i < n; i++ {
			b.data[i] += src.data[i]
		}
		return
	}
	for i := 0; i < n; i++ {
		b.data[i] += src.data[i] * gain
	}
}

func (b *AudioBuffer) ApplyGain(gain float32) {
	if gain > 1.0-UNITY_GAIN_EPSILON && gain < 1.0+UNITY_GAIN_EPSILON {
		return
	}
	for i := range b.data {
		b.data[i] *= gain
	}
}

// Clamp saturates every sample to [MIN_SAMPLE, MAX_SAMPLE]. NaN becomes 0.
// The return value counts NaN samples encountered, for diagnostic telemetry.
func (b *AudioBuffer) Clamp() int {
	anomalies := 0
	for i, s := range b.data {
		if s != s { // NaN
			b.data[i] = 0
			anomalies++
			continue
		}
		if s > MAX_SAMPLE {
			b.data[i] = MAX_SAMPLE
		} else if s < MIN_SAMPLE {
			b.data[i] = MIN_SAMPLE
		}
	}
	return anomalies
}

// Peak returns the absolute per-channel peak. Mono buffers report the same
// value for both sides.
func (b *AudioBuffer) Peak() (left, right float32) {
	if b.channels == 1 {
		var p float32
		for _, s := range b.data {
			if s < 0 {
				s = -s
			}
			if s > p {
				p = s
			}
		}
		return p, p
	}
	var l, r float32
	for i := 0; i+1 < len(b.data); i += b.channels {
		sl := b.data[i]
		if sl < 0 {
			sl = -sl
		}
		if sl > l {
			l = sl
		}
		sr := b.data[i+1]
		if sr < 0 {
			sr = -sr
		}
		if sr > r {
			r = sr
		}
	}
	return l, r
}

// RMS returns the per-channel root-mean-square over the whole buffer.
func (b *AudioBuffer) RMS() (left, right float32) {
	if b.frames == 0 {
		return 0, 0
	}
	if b.channels == 1 {
		var sum float64
		for _, s := range b.data {
			sum += float64(s) * float64(s)
		}
		v := float32(math.Sqrt(sum / float64(b.frames)))
		return v, v
	}
	var suml, sumr float64
	for i := 0; i+1 < len(b.data); i += b.channels {
		suml += float64(b.data[i]) * float64(b.data[i])
		sumr += float64(b.data[i+1]) * float64(b.data[i+1])
	}
	return float32(math.Sqrt(suml / float64(b.frames))), float32(math.Sqrt(sumr / float64(b.frames)))
}
