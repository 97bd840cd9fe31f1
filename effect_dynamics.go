// effect_dynamics.go - Compressor and noise gate with one-pole envelope followers

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

// One-pole smoothing coefficients for the gate's actual gain as it chases
// its target: slower on the way up than on the way down.
const (
	GATE_RISE_COEF = 0.999
	GATE_FALL_COEF = 0.995
)

type compressorState struct {
	env float32
}

func (s *compressorState) reset() { s.env = 0 }

// envelopeCoef converts a time constant in milliseconds to a one-pole
// coefficient at the given rate.
func envelopeCoef(ms float32, sampleRate int) float32 {
	if ms <= 0 {
		return 0
	}
	return float32(math.Exp(-1 / (float64(ms) * 0.001 * float64(sampleRate))))
}

// processCompressor runs a peak-detecting feed-forward compressor. The
// detector takes the max |sample| across channels per frame; gain reduction
// above threshold follows 10^(-dBAbove*(1-1/ratio)/20), then makeup gain.
func processCompressor(e *Effect, buf *AudioBuffer, sampleRate int) {
	thresholdLin := dbToLinear(e.params[COMP_PARAM_THRESHOLD])
	ratio := e.params[COMP_PARAM_RATIO]
	attackCoef := envelopeCoef(e.params[COMP_PARAM_ATTACK], sampleRate)
	releaseCoef := envelopeCoef(e.params[COMP_PARAM_RELEASE], sampleRate)
	makeupLin := dbToLinear(e.params[COMP_PARAM_MAKEUP])

	channels := buf.Channels()
	data := buf.Data()
	env := e.comp.env

	for f := 0; f < buf.Frames(); f++ {
		base := f * channels

		var x float32
		for c := 0; c < channels; c++ {
			s := data[base+c]
			if s < 0 {
				s = -s
			}
			if s > x {
				x = s
			}
		}

		if x > env {
			env = attackCoef*env + (1-attackCoef)*x
		} else {
			env = releaseCoef*env + (1-releaseCoef)*x
		}

		reduction := float32(1)
		if env > thresholdLin {
			dbAbove := 20 * float32(math.Log10(float64(env/thresholdLin)))
			reduction = float32(math.Pow(10, float64(-dbAbove*(1-1/ratio)/20)))
		}

		g := reduction * makeupLin
		for c := 0; c < channels; c++ {
			data[base+c] *= g
		}
	}

	e.comp.env = env
}

const (
	GATE_OPEN = iota
	GATE_HOLD
	GATE_CLOSED
)

type gateState struct {
	env           float32
	gain          float32
	holdRemaining int
	stage         int
	primed        bool
}

func (s *gateState) reset() {
	s.env = 0
	s.gain = 0
	s.holdRemaining = 0
	s.stage = GATE_CLOSED
	s.primed = false
}

// processNoiseGate tracks the input envelope and fades the signal toward
// either unity (open/hold) or the range floor (closed).
func processNoiseGate(e *Effect, buf *AudioBuffer, sampleRate int) {
	thresholdLin := dbToLinear(e.params[GATE_PARAM_THRESHOLD])
	attackCoef := envelopeCoef(e.params[GATE_PARAM_ATTACK], sampleRate)
	releaseCoef := envelopeCoef(e.params[GATE_PARAM_RELEASE], sampleRate)
	holdFrames := int(e.params[GATE_PARAM_HOLD] / 1000 * float32(sampleRate))
	rangeLin := dbToLinear(e.params[GATE_PARAM_RANGE])

	if !e.gate.primed {
		// Start at the floor so a gated-out intro stays quiet.
		e.gate.gain = rangeLin
		e.gate.primed = true
	}

	channels := buf.Channels()
	data := buf.Data()
	st := &e.gate

	for f := 0; f < buf.Frames(); f++ {
		base := f * channels

		var x float32
		for c := 0; c < channels; c++ {
			s := data[base+c]
			if s < 0 {
				s = -s
			}
			if s > x {
				x = s
			}
		}

		if x > st.env {
			st.env = attackCoef*st.env + (1-attackCoef)*x
		} else {
			st.env = releaseCoef*st.env + (1-releaseCoef)*x
		}

		target := rangeLin
		switch {
		case st.env >= thresholdLin:
			st.stage = GATE_OPEN
			st.holdRemaining = holdFrames
			target = 1
		case st.holdRemaining > 0:
			st.stage = GATE_HOLD
			st.holdRemaining--
			target = 1
		default:
			st.stage = GATE_CLOSED
		}

		if target > st.gain {
			st.gain = GATE_RISE_COEF*st.gain + (1-GATE_RISE_COEF)*target
		} else {
			st.gain = GATE_FALL_COEF*st.gain + (1-GATE_FALL_COEF)*target
		}

		for c := 0; c < channels; c++ {
			data[base+c] *= st.gain
		}
	}
}
