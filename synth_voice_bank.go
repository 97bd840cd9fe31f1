// synth_voice_bank.go - Polyphonic oscillator bank with ADSR envelopes

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

import (
	"fmt"
	"math"
)

type Waveform int

const (
	WAVE_SINE Waveform = iota
	WAVE_SAW
	WAVE_SQUARE
	WAVE_TRIANGLE
)

const (
	ENV_OFF = iota
	ENV_ATTACK
	ENV_DECAY
	ENV_SUSTAIN
	ENV_RELEASE
)

const (
	DEFAULT_MAX_VOICES = 32
	TWO_PI             = 2 * math.Pi
)

// Voice bank parameter indices, shared by synth and sampler banks where they
// apply. Routed from SetParam commands with effect index -1.
const (
	BANK_PARAM_WAVEFORM = 0
	BANK_PARAM_ATTACK   = 1
	BANK_PARAM_DECAY    = 2
	BANK_PARAM_SUSTAIN  = 3
	BANK_PARAM_RELEASE  = 4
	BANK_PARAM_DETUNE   = 5
	BANK_PARAM_VOLUME   = 6
)

// synthVoice is one array slot of preallocated DSP state. Voice stealing
// rewrites a slot in place; no voice is ever heap-allocated after the bank.
type synthVoice struct {
	active                  bool
	noteNumber              int
	velocity                int
	phase                   float64
	phaseDetune             float64
	freq                    float64
	freqDetune              float64
	envStage                int
	envLevel                float32
	releaseStartLevel       float32
	releaseSamplesRemaining int
}

// SynthVoiceBank renders a fixed array of oscillator voices additively into
// an output buffer. Each voice sums a base oscillator and a detuned copy.
type SynthVoiceBank struct {
	voices []synthVoice

	waveform     Waveform
	attack       float32 // seconds
	decay        float32
	sustain      float32
	release      float32
	detuneCents  float32
	masterVolume float32

	sampleRate int
}

func NewSynthVoiceBank(maxVoices, sampleRate int) *SynthVoiceBank {
	if maxVoices < 1 {
		maxVoices = DEFAULT_MAX_VOICES
	}
	return &SynthVoiceBank{
		voices:       make([]synthVoice, maxVoices),
		waveform:     WAVE_SAW,
		attack:       0.01,
		decay:        0.1,
		sustain:      0.7,
		release:      0.2,
		detuneCents:  4,
		masterVolume: 0.3,
		sampleRate:   sampleRate,
	}
}

func (b *SynthVoiceBank) SetWaveform(w Waveform) { b.waveform = w }

func (b *SynthVoiceBank) SetADSR(a, d, s, r float32) {
	b.attack, b.decay, b.sustain, b.release = a, d, s, r
}
func (b *SynthVoiceBank) SetDetuneCents(c float32)  { b.detuneCents = c }
func (b *SynthVoiceBank) SetMasterVolume(v float32) { b.masterVolume = v }

// SetParam routes indexed parameter writes from the command channel.
func (b *SynthVoiceBank) SetParam(index int, value float32) error {
	switch index {
	case BANK_PARAM_WAVEFORM:
		b.waveform = Waveform(clampF32(value, 0, 3))
	case BANK_PARAM_ATTACK:
		b.attack = clampF32(value, 0, 10)
	case BANK_PARAM_DECAY:
		b.decay = clampF32(value, 0, 10)
	case BANK_PARAM_SUSTAIN:
		b.sustain = clampF32(value, 0, 1)
	case BANK_PARAM_RELEASE:
		b.release = clampF32(value, 0, 10)
	case BANK_PARAM_DETUNE:
		b.detuneCents = clampF32(value, -100, 100)
	case BANK_PARAM_VOLUME:
		b.masterVolume = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("synth bank: no parameter %d", index)
	}
	return nil
}

// NoteOn claims a voice slot: the first inactive one, else the releasing
// voice with the lowest envelope, else slot 0.
func (b *SynthVoiceBank) NoteOn(noteNumber, velocity int) {
	slot := -1
	for i := range b.voices {
		if !b.voices[i].active {
			slot = i
			break
		}
	}
	if slot < 0 {
		lowest := float32(math.MaxFloat32)
		for i := range b.voices {
			if b.voices[i].envStage == ENV_RELEASE && b.voices[i].envLevel < lowest {
				lowest = b.voices[i].envLevel
				slot = i
			}
		}
	}
	if slot < 0 {
		slot = 0
	}

	freq := 440 * math.Pow(2, float64(noteNumber-69)/12)
	v := &b.voices[slot]
	*v = synthVoice{
		active:     true,
		noteNumber: noteNumber,
		velocity:   velocity,
		freq:       freq,
		freqDetune: freq * math.Pow(2, float64(b.detuneCents)/1200),
		envStage:   ENV_ATTACK,
	}
}

// NoteOff sends every matching voice not already releasing into Release.
func (b *SynthVoiceBank) NoteOff(noteNumber int) {
	for i := range b.voices {
		v := &b.voices[i]
		if v.active && v.noteNumber == noteNumber && v.envStage != ENV_RELEASE {
			v.envStage = ENV_RELEASE
			v.releaseStartLevel = v.envLevel
			v.releaseSamplesRemaining = int(b.release * float32(b.sampleRate))
		}
	}
}

// AllNotesOff hard-stops every voice. Used by transport reset.
func (b *SynthVoiceBank) AllNotesOff() {
	for i := range b.voices {
		b.voices[i].active = false
		b.voices[i].envStage = ENV_OFF
		b.voices[i].envLevel = 0
	}
}

func (b *SynthVoiceBank) Reset() { b.AllNotesOff() }

func (b *SynthVoiceBank) ActiveVoices() int {
	n := 0
	for i := range b.voices {
		if b.voices[i].active {
			n++
		}
	}
	return n
}

func oscSample(w Waveform, phase float64) float32 {
	switch w {
	case WAVE_SINE:
		return float32(math.Sin(phase))
	case WAVE_SAW:
		return float32(1 - 2*(phase/TWO_PI))
	case WAVE_SQUARE:
		if phase < math.Pi {
			return 1
		}
		return -1
	case WAVE_TRIANGLE:
		return float32(2*math.Abs(2*(phase/TWO_PI)-1) - 1)
	}
	return 0
}

// Render mixes every active voice additively into out across the full block.
func (b *SynthVoiceBank) Render(out *AudioBuffer) {
	frames := out.Frames()
	channels := out.Channels()
	data := out.Data()

	attackSamples := b.attack * float32(b.sampleRate)
	decaySamples := b.decay * float32(b.sampleRate)
	releaseSamples := b.release * float32(b.sampleRate)

	for vi := range b.voices {
		v := &b.voices[vi]
		if !v.active {
			continue
		}

		velGain := float32(v.velocity) / 127 * b.masterVolume
		phaseInc := TWO_PI * v.freq / float64(b.sampleRate)
		phaseIncDetune := TWO_PI * v.freqDetune / float64(b.sampleRate)

		for f := 0; f < frames; f++ {
			sample := (oscSample(b.waveform, v.phase) + oscSample(b.waveform, v.phaseDetune)) / 2

			switch v.envStage {
			case ENV_ATTACK:
				if attackSamples <= 1 {
					v.envLevel = 1
					v.envStage = ENV_DECAY
				} else {
					v.envLevel += 1 / attackSamples
					if v.envLevel >= 1 {
						v.envLevel = 1
						v.envStage = ENV_DECAY
					}
				}
			case ENV_DECAY:
				if decaySamples <= 0 {
					v.envLevel = b.sustain
					v.envStage = ENV_SUSTAIN
				} else {
					v.envLevel -= (1 - b.sustain) / decaySamples
					if v.envLevel <= b.sustain {
						v.envLevel = b.sustain
						v.envStage = ENV_SUSTAIN
					}
				}
			case ENV_SUSTAIN:
				// Holds until NoteOff.
			case ENV_RELEASE:
				if releaseSamples <= 0 || v.releaseSamplesRemaining <= 0 {
					v.envLevel = 0
					v.envStage = ENV_OFF
				} else {
					v.envLevel = v.releaseStartLevel * float32(v.releaseSamplesRemaining) / releaseSamples
					v.releaseSamplesRemaining--
					if v.releaseSamplesRemaining <= 0 {
						v.envLevel = 0
						v.envStage = ENV_OFF
					}
				}
			}

			if v.envStage != ENV_OFF {
				s := sample * v.envLevel * velGain
				base := f * channels
				for c := 0; c < channels; c++ {
					data[base+c] += s
				}
			}

			v.phase += phaseInc
			if v.phase >= TWO_PI {
				v.phase -= TWO_PI
			}
			v.phaseDetune += phaseIncDetune
			if v.phaseDetune >= TWO_PI {
				v.phaseDetune -= TWO_PI
			}
		}

		if v.envStage == ENV_OFF {
			v.active = false
		}
	}
}
