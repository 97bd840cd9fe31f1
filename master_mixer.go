// master_mixer.go - Track summing, master chain, metering and clamp

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

import "sync"

// MeterReading summarises one rendered block of master output.
type MeterReading struct {
	LeftPeak  float32
	RightPeak float32
	LeftRMS   float32
	RightRMS  float32
}

// MasterMixer sums every track into the master scratch, runs the master
// chain, applies master gain, clamps, and measures.
//
// Structural mutation (add/remove track) happens on the control side under
// mu with copy-on-write slices; the render worker takes the lock only long
// enough to snapshot the slice headers at the head of a block, never during
// DSP.
type MasterMixer struct {
	mu          sync.Mutex
	audioTracks []*AudioTrack
	midiTracks  []*MidiTrack
	bpm         float64
	masterGain  float32

	master      *AudioBuffer
	masterChain *EffectChain
	lastMeters  MeterReading
	anomalies   uint64

	sampleRate   int
	channels     int
	bufferFrames int
}

func NewMasterMixer(bufferFrames, channels, sampleRate int) *MasterMixer {
	return &MasterMixer{
		bpm:          DEFAULT_BPM,
		masterGain:   1,
		master:       NewAudioBuffer(bufferFrames, channels),
		masterChain:  NewEffectChain(),
		sampleRate:   sampleRate,
		channels:     channels,
		bufferFrames: bufferFrames,
	}
}

func (m *MasterMixer) MasterChain() *EffectChain { return m.masterChain }

func (m *MasterMixer) SetMasterGain(g float32) {
	m.mu.Lock()
	m.masterGain = g
	m.mu.Unlock()
}

func (m *MasterMixer) SetBPM(bpm float64) {
	m.mu.Lock()
	if bpm > 0 {
		m.bpm = bpm
	}
	m.mu.Unlock()
}

func (m *MasterMixer) BPM() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bpm
}

// AddAudioTrack publishes a track copy-on-write so an in-flight snapshot
// stays valid.
func (m *MasterMixer) AddAudioTrack(t *AudioTrack) {
	m.mu.Lock()
	tracks := make([]*AudioTrack, len(m.audioTracks), len(m.audioTracks)+1)
	copy(tracks, m.audioTracks)
	m.audioTracks = append(tracks, t)
	m.mu.Unlock()
}

func (m *MasterMixer) AddMidiTrack(t *MidiTrack) {
	m.mu.Lock()
	tracks := make([]*MidiTrack, len(m.midiTracks), len(m.midiTracks)+1)
	copy(tracks, m.midiTracks)
	m.midiTracks = append(tracks, t)
	m.mu.Unlock()
}

func (m *MasterMixer) RemoveAudioTrack(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.audioTracks {
		if t.ID == id {
			tracks := make([]*AudioTrack, 0, len(m.audioTracks)-1)
			tracks = append(tracks, m.audioTracks[:i]...)
			m.audioTracks = append(tracks, m.audioTracks[i+1:]...)
			return true
		}
	}
	return false
}

func (m *MasterMixer) RemoveMidiTrack(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.midiTracks {
		if t.ID == id {
			tracks := make([]*MidiTrack, 0, len(m.midiTracks)-1)
			tracks = append(tracks, m.midiTracks[:i]...)
			m.midiTracks = append(tracks, m.midiTracks[i+1:]...)
			return true
		}
	}
	return false
}

func (m *MasterMixer) AudioTracks() []*AudioTrack {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.audioTracks
}

func (m *MasterMixer) MidiTracks() []*MidiTrack {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.midiTracks
}

// AudioTrackByID resolves command targets on the control side.
func (m *MasterMixer) AudioTrackByID(id int) *AudioTrack {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.audioTracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (m *MasterMixer) MidiTrackByID(id int) *MidiTrack {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.midiTracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Render produces one block of master output for the window starting at
// startFrame and returns the master scratch.
func (m *MasterMixer) Render(startFrame, frames int) *AudioBuffer {
	// Structural snapshot: slice headers are immutable once published.
	m.mu.Lock()
	audioTracks := m.audioTracks
	midiTracks := m.midiTracks
	bpm := m.bpm
	masterGain := m.masterGain
	m.mu.Unlock()

	m.master.Clear()

	hasSolo := false
	for _, t := range audioTracks {
		if t.Soloed {
			hasSolo = true
			break
		}
	}
	if !hasSolo {
		for _, t := range midiTracks {
			if t.Soloed {
				hasSolo = true
				break
			}
		}
	}

	for _, t := range audioTracks {
		m.master.MixFrom(t.Render(startFrame, frames, hasSolo), 1)
	}
	for _, t := range midiTracks {
		m.master.MixFrom(t.Render(startFrame, frames, bpm, hasSolo), 1)
	}

	m.masterChain.Process(m.master, m.sampleRate)
	m.master.ApplyGain(masterGain)
	anomalies := m.master.Clamp()

	lp, rp := m.master.Peak()
	lr, rr := m.master.RMS()

	m.mu.Lock()
	m.lastMeters = MeterReading{LeftPeak: lp, RightPeak: rp, LeftRMS: lr, RightRMS: rr}
	m.anomalies += uint64(anomalies)
	m.mu.Unlock()

	return m.master
}

func (m *MasterMixer) LastMeters() MeterReading {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMeters
}

func (m *MasterMixer) Anomalies() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anomalies
}

// TotalDurationFrames is the project length: the furthest clip end across
// all tracks, MIDI ends converted at the current tempo.
func (m *MasterMixer) TotalDurationFrames() int {
	m.mu.Lock()
	audioTracks := m.audioTracks
	midiTracks := m.midiTracks
	bpm := m.bpm
	m.mu.Unlock()

	total := 0
	for _, t := range audioTracks {
		if e := t.EndFrame(); e > total {
			total = e
		}
	}
	for _, t := range midiTracks {
		if e := TicksToFrames(t.EndTick(), bpm, m.sampleRate); e > total {
			total = e
		}
	}
	return total
}

// ResetAll zeroes every stateful DSP unit without touching parameters.
// Invoked on stop and seek.
func (m *MasterMixer) ResetAll() {
	m.mu.Lock()
	audioTracks := m.audioTracks
	midiTracks := m.midiTracks
	m.mu.Unlock()

	for _, t := range audioTracks {
		t.Reset()
	}
	for _, t := range midiTracks {
		t.Reset()
	}
	m.masterChain.Reset()
	m.master.Clear()
}
