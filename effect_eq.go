// effect_eq.go - Three-band peaking equaliser built from RBJ biquads

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

const (
	EQ_BANDS = 3
	// Bands quieter than this are bypassed entirely.
	EQ_BYPASS_GAIN_DB = 0.1

	EQ_Q_LOW_HIGH = 0.70710678
	EQ_Q_MID      = 1.0

	MAX_CHANNELS = 2
)

// biquadCoeffs holds a normalised difference equation
// y0 = b0*x0 + b1*x1 + b2*x2 - a1*y1 - a2*y2.
type biquadCoeffs struct {
	b0, b1, b2, a1, a2 float64
}

// biquadHistory is the per-(band, channel) filter memory carried across
// block boundaries.
type biquadHistory struct {
	x1, x2, y1, y2 float64
}

type eq3State struct {
	history [EQ_BANDS][MAX_CHANNELS]biquadHistory
}

func (s *eq3State) reset() {
	for b := range s.history {
		for c := range s.history[b] {
			s.history[b][c] = biquadHistory{}
		}
	}
}

// peakingCoeffs derives RBJ cookbook peaking-EQ coefficients.
func peakingCoeffs(freq, gainDb, q float64, sampleRate int) biquadCoeffs {
	a := math.Pow(10, gainDb/40)
	w0 := 2 * math.Pi * freq / float64(sampleRate)
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)

	b0 := 1 + alpha*a
	b1 := -2 * cosw0
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cosw0
	a2 := 1 - alpha/a

	return biquadCoeffs{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
	}
}

func processEQ3(e *Effect, buf *AudioBuffer, sampleRate int) {
	bands := [EQ_BANDS]struct {
		freq, gain, q float64
	}{
		{float64(e.params[EQ3_PARAM_LOW_FREQ]), float64(e.params[EQ3_PARAM_LOW_GAIN]), EQ_Q_LOW_HIGH},
		{float64(e.params[EQ3_PARAM_MID_FREQ]), float64(e.params[EQ3_PARAM_MID_GAIN]), EQ_Q_MID},
		{float64(e.params[EQ3_PARAM_HIGH_FREQ]), float64(e.params[EQ3_PARAM_HIGH_GAIN]), EQ_Q_LOW_HIGH},
	}

	channels := buf.Channels()
	data := buf.Data()

	for b, band := range bands {
		if math.Abs(band.gain) < EQ_BYPASS_GAIN_DB {
			continue
		}
		co := peakingCoeffs(band.freq, band.gain, band.q, sampleRate)
		for c := 0; c < channels; c++ {
			h := &e.eq.history[b][c]
			for i := c; i < len(data); i += channels {
				x0 := float64(data[i])
				y0 := co.b0*x0 + co.b1*h.x1 + co.b2*h.x2 - co.a1*h.y1 - co.a2*h.y2
				h.x2, h.x1 = h.x1, x0
				h.y2, h.y1 = h.y1, y0
				data[i] = float32(y0)
			}
		}
	}
}
