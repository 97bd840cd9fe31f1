// audio_clip.go - Windowed clip view into a shared source buffer

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

// AudioClip is a windowed view into a source buffer placed on the project
// timeline. Multiple clips may read the same source; the source is read-only
// on the render worker after publication.
type AudioClip struct {
	ID             int
	StartFrame     int
	TrimStartFrame int
	DurationFrames int // 0 means the rest of the source after the trim
	Volume         float32
	Source         *AudioBuffer
}

func NewAudioClip(id int, source *AudioBuffer, startFrame int) *AudioClip {
	return &AudioClip{ID: id, StartFrame: startFrame, Volume: 1, Source: source}
}

// EffectiveDuration resolves the zero-duration convention against the source.
func (c *AudioClip) EffectiveDuration() int {
	if c.DurationFrames > 0 {
		return c.DurationFrames
	}
	if c.Source == nil {
		return 0
	}
	d := c.Source.Frames() - c.TrimStartFrame
	if d < 0 {
		return 0
	}
	return d
}

// EndFrame is the first project frame past the clip.
func (c *AudioClip) EndFrame() int {
	return c.StartFrame + c.EffectiveDuration()
}
