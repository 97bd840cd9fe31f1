// effect_delay.go - Feedback delay over a circular sample line

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

// DELAY_LINE_SECONDS sizes the line for the maximum delayMs plus headroom.
const DELAY_LINE_SECONDS = 2.1

type delayState struct {
	line *RingBuffer
}

func (s *delayState) reset() {
	if s.line != nil {
		s.line.Reset()
	}
}

// processDelay runs one interleaved delay line across all channels. Per
// sample: read the line delaySamples back, write input + delayed*feedback,
// output input*(1-mix) + delayed*mix.
func processDelay(e *Effect, buf *AudioBuffer, sampleRate int) {
	channels := buf.Channels()

	if e.delay.line == nil {
		size := int(math.Ceil(DELAY_LINE_SECONDS*float64(sampleRate))) * channels
		e.delay.line = NewRingBuffer(size)
	}
	line := e.delay.line

	delayMs := e.params[DELAY_PARAM_MS]
	feedback := e.params[DELAY_PARAM_FEEDBACK]
	mix := e.params[DELAY_PARAM_MIX]

	delaySamples := int(math.Round(float64(delayMs)*float64(sampleRate)/1000)) * channels
	if delaySamples < 1 {
		delaySamples = 1
	}
	if delaySamples > line.Size()-1 {
		delaySamples = line.Size() - 1
	}

	dry := 1 - mix
	data := buf.Data()
	for i := range data {
		in := data[i]
		delayed := line.ReadAt(delaySamples - 1)
		line.Write(in + delayed*feedback)
		data[i] = in*dry + delayed*mix
	}
}
