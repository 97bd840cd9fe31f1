// effect_reverb.go - Schroeder reverb: parallel damped combs into series all-passes

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

// Comb and all-pass lengths in samples at 44.1 kHz; scaled by
// sampleRate/44100 and rounded when the tank is built.
var reverbCombLengths = [8]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
var reverbAllpassLengths = [4]int{556, 441, 341, 225}

const (
	REVERB_REFERENCE_RATE = 44100
	ALLPASS_FEEDBACK      = 0.5
)

type reverbComb struct {
	buffer []float32
	pos    int
	store  float32 // one-pole low-pass state in the feedback path
}

type reverbAllpass struct {
	buffer []float32
	pos    int
}

type reverbState struct {
	combs     [8]reverbComb
	allpasses [4]reverbAllpass
	built     bool
}

func (s *reverbState) build(sampleRate int) {
	scale := float64(sampleRate) / REVERB_REFERENCE_RATE
	for i := range s.combs {
		n := int(math.Round(float64(reverbCombLengths[i]) * scale))
		s.combs[i].buffer = make([]float32, n)
	}
	for i := range s.allpasses {
		n := int(math.Round(float64(reverbAllpassLengths[i]) * scale))
		s.allpasses[i].buffer = make([]float32, n)
	}
	s.built = true
}

func (s *reverbState) reset() {
	for i := range s.combs {
		c := &s.combs[i]
		for j := range c.buffer {
			c.buffer[j] = 0
		}
		c.pos = 0
		c.store = 0
	}
	for i := range s.allpasses {
		a := &s.allpasses[i]
		for j := range a.buffer {
			a.buffer[j] = 0
		}
		a.pos = 0
	}
}

// processReverb feeds the per-frame channel mean through the tank and mixes
// the wet result back into every channel. Tank buffers are allocated once on
// the first call at a stable sample rate.
func processReverb(e *Effect, buf *AudioBuffer, sampleRate int) {
	if !e.reverb.built {
		e.reverb.build(sampleRate)
	}

	roomSize := e.params[REVERB_PARAM_ROOM]
	damping := e.params[REVERB_PARAM_DAMPING]
	mix := e.params[REVERB_PARAM_MIX]
	dry := 1 - mix

	channels := buf.Channels()
	data := buf.Data()
	st := &e.reverb

	for f := 0; f < buf.Frames(); f++ {
		base := f * channels

		var in float32
		for c := 0; c < channels; c++ {
			in += data[base+c]
		}
		in /= float32(channels)

		var out float32
		for i := range st.combs {
			comb := &st.combs[i]
			delayed := comb.buffer[comb.pos]
			out += delayed
			comb.store = delayed*(1-damping) + comb.store*damping
			comb.buffer[comb.pos] = in + comb.store*roomSize
			comb.pos++
			if comb.pos == len(comb.buffer) {
				comb.pos = 0
			}
		}

		for i := range st.allpasses {
			ap := &st.allpasses[i]
			buffered := ap.buffer[ap.pos]
			ap.buffer[ap.pos] = out + buffered*ALLPASS_FEEDBACK
			out = -out + buffered
			ap.pos++
			if ap.pos == len(ap.buffer) {
				ap.pos = 0
			}
		}

		for c := 0; c < channels; c++ {
			data[base+c] = data[base+c]*dry + out*mix
		}
	}
}
