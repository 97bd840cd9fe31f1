// audio_track.go - Audio clip track rendering into a per-track scratch buffer

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

// applyVolumePan applies track volume and constant-power pan in one pass.
// Mono buffers get volume only; the pan law needs two channels.
func applyVolumePan(buf *AudioBuffer, volume, pan float32) {
	if buf.Channels() == 1 {
		buf.ApplyGain(volume)
		return
	}
	theta := float64(pan+1) * math.Pi / 4
	leftGain := volume * float32(math.Cos(theta))
	rightGain := volume * float32(math.Sin(theta))

	data := buf.Data()
	channels := buf.Channels()
	for i := 0; i+1 < len(data); i += channels {
		data[i] *= leftGain
		data[i+1] *= rightGain
	}
}

// AudioTrack owns its clips, effect chain and scratch buffer exclusively.
type AudioTrack struct {
	ID     int
	Name   string
	Volume float32
	Pan    float32
	Muted  bool
	Soloed bool

	clips   []*AudioClip
	chain   *EffectChain
	scratch *AudioBuffer

	sampleRate int
}

func NewAudioTrack(id int, name string, bufferFrames, channels, sampleRate int) *AudioTrack {
	return &AudioTrack{
		ID:         id,
		Name:       name,
		Volume:     1,
		chain:      NewEffectChain(),
		scratch:    NewAudioBuffer(bufferFrames, channels),
		sampleRate: sampleRate,
	}
}

func (t *AudioTrack) Chain() *EffectChain { return t.chain }
func (t *AudioTrack) Clips() []*AudioClip { return t.clips }

func (t *AudioTrack) AddClip(c *AudioClip) {
	t.clips = append(t.clips, c)
}

func (t *AudioTrack) RemoveClip(id int) bool {
	for i, c := range t.clips {
		if c.ID == id {
			t.clips = append(t.clips[:i], t.clips[i+1:]...)
			return true
		}
	}
	return false
}

// EndFrame is the largest clip end on this track.
func (t *AudioTrack) EndFrame() int {
	end := 0
	for _, c := range t.clips {
		if c.EndFrame() > end {
			end = c.EndFrame()
		}
	}
	return end
}

// audible gates a track against its own mute flag and project solo state.
func audible(muted, soloed, hasSolo bool) bool {
	if muted {
		return false
	}
	if hasSolo && !soloed {
		return false
	}
	return true
}

// Render fills the scratch buffer with the track's output for the window
// [startFrame, startFrame+frames) and returns it. Overlapping clips sum.
func (t *AudioTrack) Render(startFrame, frames int, hasSolo bool) *AudioBuffer {
	t.scratch.Clear()
	if !audible(t.Muted, t.Soloed, hasSolo) {
		return t.scratch
	}

	channels := t.scratch.Channels()
	out := t.scratch.Data()

	for _, clip := range t.clips {
		if clip.Source == nil {
			continue
		}
		clipEnd := clip.EndFrame()
		src := clip.Source.Data()
		srcFrames := clip.Source.Frames()
		srcChannels := clip.Source.Channels()

		for f := 0; f < frames; f++ {
			p := startFrame + f
			if p < clip.StartFrame || p >= clipEnd {
				continue
			}
			srcFrame := clip.TrimStartFrame + (p - clip.StartFrame)
			if srcFrame < 0 || srcFrame >= srcFrames {
				continue
			}
			base := f * channels
			srcBase := srcFrame * srcChannels
			for c := 0; c < channels; c++ {
				sc := c
				if sc >= srcChannels {
					sc = srcChannels - 1
				}
				out[base+c] += src[srcBase+sc] * clip.Volume
			}
		}
	}

	t.chain.Process(t.scratch, t.sampleRate)
	applyVolumePan(t.scratch, t.Volume, t.Pan)
	return t.scratch
}

// Reset clears effect state; audio tracks have no voice state.
func (t *AudioTrack) Reset() {
	t.chain.Reset()
}
