// midi_track.go - MIDI clip track driving a voice bank per render window

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

// VoiceBank is the polyphonic instrument behind a MIDI track: either the
// oscillator synth or the sampler.
type VoiceBank interface {
	NoteOn(noteNumber, velocity int)
	NoteOff(noteNumber int)
	AllNotesOff()
	Render(out *AudioBuffer)
	Reset()
	ActiveVoices() int
	SetParam(index int, value float32) error
}

// MidiTrack schedules clip notes into its voice bank per render window.
// Note timing is block-granular: onsets snap to block boundaries.
type MidiTrack struct {
	ID     int
	Name   string
	Volume float32
	Pan    float32
	Muted  bool
	Soloed bool

	clips   []*MidiClip
	chain   *EffectChain
	scratch *AudioBuffer
	bank    VoiceBank

	// activeNotes tracks sounding note ids so a transport reset can be
	// followed by a clean re-send; the bank's AllNotesOff is the authority.
	activeNotes map[int]struct{}

	sampleRate int
}

func NewMidiTrack(id int, name string, bank VoiceBank, bufferFrames, channels, sampleRate int) *MidiTrack {
	return &MidiTrack{
		ID:          id,
		Name:        name,
		Volume:      1,
		chain:       NewEffectChain(),
		scratch:     NewAudioBuffer(bufferFrames, channels),
		bank:        bank,
		activeNotes: make(map[int]struct{}, 64),
		sampleRate:  sampleRate,
	}
}

func (t *MidiTrack) Chain() *EffectChain { return t.chain }
func (t *MidiTrack) Bank() VoiceBank     { return t.bank }
func (t *MidiTrack) Clips() []*MidiClip  { return t.clips }

func (t *MidiTrack) AddClip(c *MidiClip) {
	t.clips = append(t.clips, c)
}

func (t *MidiTrack) RemoveClip(id int) bool {
	for i, c := range t.clips {
		if c.ID == id {
			t.clips = append(t.clips[:i], t.clips[i+1:]...)
			return true
		}
	}
	return false
}

// EndTick is the largest clip end on this track, in project ticks.
func (t *MidiTrack) EndTick() int {
	end := 0
	for _, c := range t.clips {
		if e := c.StartTick + c.LengthTicks(); e > end {
			end = e
		}
	}
	return end
}

// Render drains the window's note events into the voice bank, renders the
// bank, runs the effect chain, then applies volume and constant-power pan.
func (t *MidiTrack) Render(startFrame, frames int, bpm float64, hasSolo bool) *AudioBuffer {
	t.scratch.Clear()
	if !audible(t.Muted, t.Soloed, hasSolo) {
		return t.scratch
	}

	startTick := SecondsToTicks(float64(startFrame)/float64(t.sampleRate), bpm)
	endTick := SecondsToTicks(float64(startFrame+frames)/float64(t.sampleRate), bpm)

	for _, clip := range t.clips {
		localFrom := startTick - clip.StartTick
		localTo := endTick - clip.StartTick
		clip.EachNoteOn(localFrom, localTo, func(n MidiNote) {
			t.bank.NoteOn(n.NoteNumber, n.Velocity)
			t.activeNotes[n.ID] = struct{}{}
		})
		clip.EachNoteOff(localFrom, localTo, func(n MidiNote) {
			t.bank.NoteOff(n.NoteNumber)
			delete(t.activeNotes, n.ID)
		})
	}

	t.bank.Render(t.scratch)
	t.chain.Process(t.scratch, t.sampleRate)
	applyVolumePan(t.scratch, t.Volume, t.Pan)
	return t.scratch
}

// Reset silences the bank, forgets sounding notes and clears effect state.
// Called on transport stop and seek.
func (t *MidiTrack) Reset() {
	t.bank.AllNotesOff()
	for id := range t.activeNotes {
		delete(t.activeNotes, id)
	}
	t.chain.Reset()
}
