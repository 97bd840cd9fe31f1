// effect.go - Tagged-variant effect type with static parameter descriptors

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

import "fmt"

type EffectType int

const (
	EFFECT_GAIN EffectType = iota
	EFFECT_FADE
	EFFECT_DELAY
	EFFECT_EQ3
	EFFECT_COMPRESSOR
	EFFECT_NOISE_GATE
	EFFECT_REVERB
)

var effectTypeNames = map[EffectType]string{
	EFFECT_GAIN:       "gain",
	EFFECT_FADE:       "fade",
	EFFECT_DELAY:      "delay",
	EFFECT_EQ3:        "eq3",
	EFFECT_COMPRESSOR: "compressor",
	EFFECT_NOISE_GATE: "noisegate",
	EFFECT_REVERB:     "reverb",
}

func (t EffectType) String() string { return effectTypeNames[t] }

// EffectTypeByName resolves a script/config name to an effect type.
func EffectTypeByName(name string) (EffectType, bool) {
	for t, n := range effectTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// ParamDesc statically describes one effect parameter. Writes through
// SetParam are clamped to [Min, Max] at the boundary.
type ParamDesc struct {
	Name        string
	Min         float32
	Max         float32
	Default     float32
	Unit        string
	Logarithmic bool
}

// Parameter indices per effect type. The tables are the authority for ranges
// and defaults; the process functions read values by index.
const (
	GAIN_PARAM_DB = 0

	FADE_PARAM_IN_MS  = 0
	FADE_PARAM_OUT_MS = 1

	DELAY_PARAM_MS       = 0
	DELAY_PARAM_FEEDBACK = 1
	DELAY_PARAM_MIX      = 2

	EQ3_PARAM_LOW_FREQ  = 0
	EQ3_PARAM_LOW_GAIN  = 1
	EQ3_PARAM_MID_FREQ  = 2
	EQ3_PARAM_MID_GAIN  = 3
	EQ3_PARAM_HIGH_FREQ = 4
	EQ3_PARAM_HIGH_GAIN = 5

	COMP_PARAM_THRESHOLD = 0
	COMP_PARAM_RATIO     = 1
	COMP_PARAM_ATTACK    = 2
	COMP_PARAM_RELEASE   = 3
	COMP_PARAM_MAKEUP    = 4

	GATE_PARAM_THRESHOLD = 0
	GATE_PARAM_ATTACK    = 1
	GATE_PARAM_RELEASE   = 2
	GATE_PARAM_HOLD      = 3
	GATE_PARAM_RANGE     = 4

	REVERB_PARAM_ROOM    = 0
	REVERB_PARAM_DAMPING = 1
	REVERB_PARAM_MIX     = 2
)

var effectParamTables = map[EffectType][]ParamDesc{
	EFFECT_GAIN: {
		{"gainDb", -60, 12, 0, "dB", false},
	},
	EFFECT_FADE: {
		{"fadeInMs", 0, 10000, 0, "ms", false},
		{"fadeOutMs", 0, 10000, 0, "ms", false},
	},
	EFFECT_DELAY: {
		{"delayMs", 1, 2000, 350, "ms", false},
		{"feedback", 0, 0.95, 0.35, "", false},
		{"mix", 0, 1, 0.3, "", false},
	},
	EFFECT_EQ3: {
		{"lowFreq", 20, 1000, 100, "Hz", true},
		{"lowGainDb", -24, 24, 0, "dB", false},
		{"midFreq", 200, 8000, 1000, "Hz", true},
		{"midGainDb", -24, 24, 0, "dB", false},
		{"highFreq", 2000, 16000, 8000, "Hz", true},
		{"highGainDb", -24, 24, 0, "dB", false},
	},
	EFFECT_COMPRESSOR: {
		{"thresholdDb", -60, 0, -18, "dB", false},
		{"ratio", 1, 20, 4, ":1", false},
		{"attackMs", 0.1, 200, 10, "ms", false},
		{"releaseMs", 1, 2000, 100, "ms", false},
		{"makeupDb", 0, 24, 0, "dB", false},
	},
	EFFECT_NOISE_GATE: {
		{"thresholdDb", -80, 0, -50, "dB", false},
		{"attackMs", 0.1, 200, 5, "ms", false},
		{"releaseMs", 1, 2000, 100, "ms", false},
		{"holdMs", 0, 500, 50, "ms", false},
		{"rangeDb", -80, 0, -80, "dB", false},
	},
	EFFECT_REVERB: {
		{"roomSize", 0, 0.98, 0.7, "", false},
		{"damping", 0, 0.99, 0.5, "", false},
		{"mix", 0, 1, 0.3, "", false},
	},
}

// EffectParamDescs returns the static descriptor table for an effect type.
func EffectParamDescs(t EffectType) []ParamDesc {
	return effectParamTables[t]
}

// Effect is a tagged variant: one type discriminant, a parameter vector
// indexed by the descriptor table, and per-variant persistent DSP state.
// Dispatch at Process time is a single switch on the discriminant.
//
// None of the process functions allocate after the first call at a stable
// sample rate; delay lines and reverb tanks are built lazily on that call.
type Effect struct {
	kind    EffectType
	enabled bool
	params  []float32

	delay  delayState
	eq     eq3State
	comp   compressorState
	gate   gateState
	reverb reverbState
}

func NewEffect(kind EffectType) *Effect {
	descs := effectParamTables[kind]
	params := make([]float32, len(descs))
	for i, d := range descs {
		params[i] = d.Default
	}
	return &Effect{kind: kind, enabled: true, params: params}
}

func (e *Effect) Type() EffectType { return e.kind }
func (e *Effect) Enabled() bool    { return e.enabled }
func (e *Effect) SetEnabled(v bool) {
	e.enabled = v
}

func (e *Effect) ParamCount() int { return len(e.params) }

func (e *Effect) Param(index int) float32 {
	return e.params[index]
}

// SetParam writes a parameter value, clamped to the descriptor range.
// Out-of-range indices return an error to the control side; the render
// worker routes SetParam commands through here and ignores the error.
func (e *Effect) SetParam(index int, value float32) error {
	descs := effectParamTables[e.kind]
	if index < 0 || index >= len(descs) {
		return fmt.Errorf("effect %s: no parameter %d", e.kind, index)
	}
	d := descs[index]
	e.params[index] = clampF32(value, d.Min, d.Max)
	return nil
}

// SetParamByName is the control-side convenience used by the script loader.
func (e *Effect) SetParamByName(name string, value float32) error {
	for i, d := range effectParamTables[e.kind] {
		if d.Name == name {
			return e.SetParam(i, value)
		}
	}
	return fmt.Errorf("effect %s: no parameter %q", e.kind, name)
}

// Process mutates buf in place. Disabled effects are skipped by the chain,
// not here; calling Process on a disabled effect still processes.
func (e *Effect) Process(buf *AudioBuffer, sampleRate int) {
	switch e.kind {
	case EFFECT_GAIN:
		processGain(e, buf)
	case EFFECT_FADE:
		processFade(e, buf, sampleRate)
	case EFFECT_DELAY:
		processDelay(e, buf, sampleRate)
	case EFFECT_EQ3:
		processEQ3(e, buf, sampleRate)
	case EFFECT_COMPRESSOR:
		processCompressor(e, buf, sampleRate)
	case EFFECT_NOISE_GATE:
		processNoiseGate(e, buf, sampleRate)
	case EFFECT_REVERB:
		processReverb(e, buf, sampleRate)
	}
}

// Reset zeroes all persistent DSP state without freeing memory or touching
// parameter values.
func (e *Effect) Reset() {
	switch e.kind {
	case EFFECT_DELAY:
		e.delay.reset()
	case EFFECT_EQ3:
		e.eq.reset()
	case EFFECT_COMPRESSOR:
		e.comp.reset()
	case EFFECT_NOISE_GATE:
		e.gate.reset()
	case EFFECT_REVERB:
		e.reverb.reset()
	}
}
