// effect_basic.go - Stateless gain and fade processors

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

func processGain(e *Effect, buf *AudioBuffer) {
	db := e.params[GAIN_PARAM_DB]
	if db == 0 {
		return
	}
	buf.ApplyGain(dbToLinear(db))
}

// processFade multiplies frame f by
// min(f/fadeInFrames, 1) * min((totalFrames-f)/fadeOutFrames, 1),
// where a zero-length fade contributes gain 1.
func processFade(e *Effect, buf *AudioBuffer, sampleRate int) {
	inMs := e.params[FADE_PARAM_IN_MS]
	outMs := e.params[FADE_PARAM_OUT_MS]
	if inMs == 0 && outMs == 0 {
		return
	}

	fadeInFrames := inMs / 1000 * float32(sampleRate)
	fadeOutFrames := outMs / 1000 * float32(sampleRate)

	frames := buf.Frames()
	channels := buf.Channels()
	data := buf.Data()

	for f := 0; f < frames; f++ {
		g := float32(1)
		if fadeInFrames > 0 {
			if gin := float32(f) / fadeInFrames; gin < 1 {
				g *= gin
			}
		}
		if fadeOutFrames > 0 {
			if gout := float32(frames-f) / fadeOutFrames; gout < 1 {
				g *= gout
			}
		}
		if g == 1 {
			continue
		}
		base := f * channels
		for c := 0; c < channels; c++ {
			data[base+c] *= g
		}
	}
}
