// sampler_voice_bank.go - Pitch-shifted sample playback voices with looping

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

type LoopMode int

const (
	LOOP_NONE LoopMode = iota
	LOOP_FORWARD
	LOOP_PINGPONG
)

const (
	SAMPLER_ATTACK_SECONDS  = 0.010
	SAMPLER_RELEASE_SECONDS = 0.300
)

// SamplerZone maps notes onto a region of mono sample data.
type SamplerZone struct {
	Data       []float32
	SampleRate int

	SampleStart int
	SampleEnd   int
	LoopStart   int
	LoopEnd     int
	RootKey     int
	TuneCents   float32
	Mode        LoopMode
}

type samplerVoice struct {
	active                  bool
	noteNumber              int
	velocity                int
	pos                     float64
	rate                    float64
	reverse                 bool // ping-pong direction
	envStage                int
	envLevel                float32
	releaseStartLevel       float32
	releaseSamplesRemaining int
}

// SamplerVoiceBank plays a single zone polyphonically with the same voice
// allocation policy as the synth bank and a fixed AHR envelope: 10 ms attack,
// hold, 300 ms linear release.
type SamplerVoiceBank struct {
	voices       []samplerVoice
	zone         SamplerZone
	masterVolume float32
	sampleRate   int
}

func NewSamplerVoiceBank(maxVoices, sampleRate int, zone SamplerZone) *SamplerVoiceBank {
	if maxVoices < 1 {
		maxVoices = DEFAULT_MAX_VOICES
	}
	if zone.SampleEnd <= 0 || zone.SampleEnd > len(zone.Data) {
		zone.SampleEnd = len(zone.Data)
	}
	return &SamplerVoiceBank{
		voices:       make([]samplerVoice, maxVoices),
		zone:         zone,
		masterVolume: 0.8,
		sampleRate:   sampleRate,
	}
}

func (b *SamplerVoiceBank) SetMasterVolume(v float32) { b.masterVolume = v }

func (b *SamplerVoiceBank) SetParam(index int, value float32) error {
	switch index {
	case BANK_PARAM_VOLUME:
		b.masterVolume = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("sampler bank: no parameter %d", index)
	}
	return nil
}

func (b *SamplerVoiceBank) NoteOn(noteNumber, velocity int) {
	if len(b.zone.Data) == 0 {
		return
	}

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

	z := &b.zone
	rate := math.Pow(2, (float64(noteNumber-z.RootKey)+float64(z.TuneCents)/100)/12) *
		float64(z.SampleRate) / float64(b.sampleRate)

	b.voices[slot] = samplerVoice{
		active:     true,
		noteNumber: noteNumber,
		velocity:   velocity,
		pos:        float64(z.SampleStart),
		rate:       rate,
		envStage:   ENV_ATTACK,
	}
}

func (b *SamplerVoiceBank) NoteOff(noteNumber int) {
	for i := range b.voices {
		v := &b.voices[i]
		if v.active && v.noteNumber == noteNumber && v.envStage != ENV_RELEASE {
			v.envStage = ENV_RELEASE
			v.releaseStartLevel = v.envLevel
			v.releaseSamplesRemaining = int(SAMPLER_RELEASE_SECONDS * float64(b.sampleRate))
		}
	}
}

func (b *SamplerVoiceBank) AllNotesOff() {
	for i := range b.voices {
		b.voices[i].active = false
		b.voices[i].envStage = ENV_OFF
		b.voices[i].envLevel = 0
	}
}

func (b *SamplerVoiceBank) Reset() { b.AllNotesOff() }

func (b *SamplerVoiceBank) ActiveVoices() int {
	n := 0
	for i := range b.voices {
		if b.voices[i].active {
			n++
		}
	}
	return n
}

// Render mixes every active voice additively into out.
func (b *SamplerVoiceBank) Render(out *AudioBuffer) {
	frames := out.Frames()
	channels := out.Channels()
	data := out.Data()
	z := &b.zone

	attackSamples := float32(SAMPLER_ATTACK_SECONDS * float64(b.sampleRate))
	releaseSamples := float32(SAMPLER_RELEASE_SECONDS * float64(b.sampleRate))

	for vi := range b.voices {
		v := &b.voices[vi]
		if !v.active {
			continue
		}

		velGain := float32(v.velocity) / 127 * b.masterVolume

		for f := 0; f < frames; f++ {
			idx := int(v.pos)
			if idx < z.SampleStart || idx+1 >= z.SampleEnd {
				v.active = false
				v.envStage = ENV_OFF
				break
			}
			frac := float32(v.pos - float64(idx))
			sample := z.Data[idx]*(1-frac) + z.Data[idx+1]*frac

			switch v.envStage {
			case ENV_ATTACK:
				if attackSamples <= 1 {
					v.envLevel = 1
					v.envStage = ENV_SUSTAIN
				} else {
					v.envLevel += 1 / attackSamples
					if v.envLevel >= 1 {
						v.envLevel = 1
						v.envStage = ENV_SUSTAIN
					}
				}
			case ENV_SUSTAIN:
				// Hold until NoteOff.
			case ENV_RELEASE:
				if v.releaseSamplesRemaining <= 0 {
					v.envLevel = 0
					v.envStage = ENV_OFF
				} else {
					v.envLevel = v.releaseStartLevel * float32(v.releaseSamplesRemaining) / releaseSamples
					v.releaseSamplesRemaining--
				}
			}
			if v.envStage == ENV_OFF {
				v.active = false
				break
			}

			s := sample * v.envLevel * velGain
			base := f * channels
			for c := 0; c < channels; c++ {
				data[base+c] += s
			}

			if v.reverse {
				v.pos -= v.rate
			} else {
				v.pos += v.rate
			}

			switch z.Mode {
			case LOOP_FORWARD:
				if z.LoopEnd > z.LoopStart && v.pos >= float64(z.LoopEnd) {
					v.pos = float64(z.LoopStart) + (v.pos - float64(z.LoopEnd))
				}
			case LOOP_PINGPONG:
				if z.LoopEnd > z.LoopStart {
					if !v.reverse && v.pos >= float64(z.LoopEnd) {
						v.pos = float64(z.LoopEnd) - (v.pos - float64(z.LoopEnd))
						v.reverse = true
					} else if v.reverse && v.pos <= float64(z.LoopStart) {
						v.pos = float64(z.LoopStart) + (float64(z.LoopStart) - v.pos)
						v.reverse = false
					}
				}
			}
		}
	}
}
