// track_test.go - Audio and MIDI track rendering tests

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
	"math"
	"testing"
)

func dcBuffer(frames, channels int, level float32) *AudioBuffer {
	b := NewAudioBuffer(frames, channels)
	for i := range b.Data() {
		b.Data()[i] = level
	}
	return b
}

func TestAudioClipEffectiveDuration(t *testing.T) {
	source := dcBuffer(1000, 1, 0.5)

	clip := NewAudioClip(0, source, 0)
	if got := clip.EffectiveDuration(); got != 1000 {
		t.Fatalf("full-source duration = %d", got)
	}

	clip.TrimStartFrame = 300
	if got := clip.EffectiveDuration(); got != 700 {
		t.Fatalf("trimmed duration = %d, want 700", got)
	}

	clip.DurationFrames = 200
	if got := clip.EffectiveDuration(); got != 200 {
		t.Fatalf("explicit duration = %d, want 200", got)
	}
}

func TestAudioTrackClipPlacement(t *testing.T) {
	t.Log("a clip starting past 0 must leave everything before its start silent")

	const startFrame = 300
	source := dcBuffer(1000, 1, 0.5)

	track := NewAudioTrack(0, "placed", 512, 1, testRate)
	clip := NewAudioClip(0, source, startFrame)
	track.AddClip(clip)

	out := track.Render(0, 512, false)
	for f := 0; f < startFrame; f++ {
		if out.Sample(f, 0) != 0 {
			t.Fatalf("frame %d before clip start is %v", f, out.Sample(f, 0))
		}
	}
	if out.Sample(startFrame, 0) != 0.5 {
		t.Fatalf("first clip frame = %v, want 0.5", out.Sample(startFrame, 0))
	}
}

func TestAudioTrackTrimReadsOffsetSource(t *testing.T) {
	source := NewAudioBuffer(100, 1)
	for i := range source.Data() {
		source.Data()[i] = float32(i)
	}

	track := NewAudioTrack(0, "trimmed", 16, 1, testRate)
	clip := NewAudioClip(0, source, 0)
	clip.TrimStartFrame = 40
	track.AddClip(clip)

	out := track.Render(0, 16, false)
	if out.Sample(0, 0) != 40 || out.Sample(15, 0) != 55 {
		t.Fatalf("trim offset wrong: got %v..%v", out.Sample(0, 0), out.Sample(15, 0))
	}
}

func TestAudioTrackOverlappingClipsSum(t *testing.T) {
	source := dcBuffer(512, 1, 0.2)

	track := NewAudioTrack(0, "overlap", 512, 1, testRate)
	track.AddClip(NewAudioClip(0, source, 0))
	track.AddClip(NewAudioClip(1, source, 0))

	out := track.Render(0, 512, false)
	if got := out.Sample(0, 0); math.Abs(float64(got)-0.4) > 1e-6 {
		t.Fatalf("overlapping clips must sum: %v, want 0.4", got)
	}
}

func TestTrackMuteAndSoloGate(t *testing.T) {
	source := dcBuffer(512, 1, 0.5)

	track := NewAudioTrack(0, "gated", 512, 1, testRate)
	track.AddClip(NewAudioClip(0, source, 0))

	track.Muted = true
	out := track.Render(0, 512, false)
	if p, _ := out.Peak(); p != 0 {
		t.Fatalf("muted track produced output: %v", p)
	}

	track.Muted = false
	out = track.Render(0, 512, true) // someone else is soloed
	if p, _ := out.Peak(); p != 0 {
		t.Fatalf("non-soloed track must be silent under solo: %v", p)
	}

	track.Soloed = true
	out = track.Render(0, 512, true)
	if p, _ := out.Peak(); p != 0.5 {
		t.Fatalf("soloed track must be audible: %v", p)
	}

	track.Muted = true
	out = track.Render(0, 512, true)
	if p, _ := out.Peak(); p != 0 {
		t.Fatalf("muted wins over soloed: %v", p)
	}
}

func TestConstantPowerPanLaw(t *testing.T) {
	t.Log("centre pan splits at cos/sin of pi/4; hard pans isolate a side")

	mk := func(pan float32) *AudioBuffer {
		track := NewAudioTrack(0, "panned", 64, 2, testRate)
		track.Pan = pan
		track.AddClip(NewAudioClip(0, dcBuffer(64, 2, 1), 0))
		return track.Render(0, 64, false)
	}

	centre := mk(0)
	want := float32(math.Sqrt2 / 2)
	if l := centre.Sample(0, 0); math.Abs(float64(l-want)) > 1e-6 {
		t.Fatalf("centre left gain %v, want %v", l, want)
	}
	if r := centre.Sample(0, 1); math.Abs(float64(r-want)) > 1e-6 {
		t.Fatalf("centre right gain %v, want %v", r, want)
	}

	left := mk(-1)
	if l := left.Sample(0, 0); math.Abs(float64(l)-1) > 1e-6 {
		t.Fatalf("hard left: left gain %v, want 1", l)
	}
	if r := left.Sample(0, 1); math.Abs(float64(r)) > 1e-6 {
		t.Fatalf("hard left: right gain %v, want 0", r)
	}

	right := mk(1)
	if l := right.Sample(0, 0); math.Abs(float64(l)) > 1e-6 {
		t.Fatalf("hard right: left gain %v, want 0", l)
	}
	if r := right.Sample(0, 1); math.Abs(float64(r)-1) > 1e-6 {
		t.Fatalf("hard right: right gain %v, want 1", r)
	}
}

func TestMidiTrackSchedulesNotesIntoBank(t *testing.T) {
	t.Log("a note at tick 0 must sound in the first block and release on its end tick")

	bank := NewSynthVoiceBank(8, testRate)
	bank.SetADSR(0.001, 0.01, 0.8, 0.05)

	track := NewMidiTrack(0, "melody", bank, 512, 2, testRate)
	clip := NewMidiClip(0, "clip", 0)
	clip.AddNote(MidiNote{ID: 1, NoteNumber: 60, Velocity: 100, StartTick: 0, DurationTicks: PPQ})
	track.AddClip(clip)

	out := track.Render(0, 512, 120, false)
	if p, _ := out.Peak(); p == 0 {
		t.Fatal("first block is silent; the note never reached the bank")
	}
	if bank.ActiveVoices() != 1 {
		t.Fatalf("active voices = %d, want 1", bank.ActiveVoices())
	}

	// One beat at 120 BPM is 0.5 s = 22050 frames. Render past it and let
	// the 50 ms release finish.
	blocks := (22050+512)/512 + int(0.05*testRate)/512 + 2
	for block := 1; block <= blocks; block++ {
		track.Render(block*512, 512, 120, false)
	}
	if bank.ActiveVoices() != 0 {
		t.Fatalf("voice still active after note end and release: %d", bank.ActiveVoices())
	}
}

func TestMidiTrackClipOffsetShiftsOnsets(t *testing.T) {
	bank := NewSynthVoiceBank(8, testRate)
	track := NewMidiTrack(0, "late", bank, 512, 2, testRate)
	clip := NewMidiClip(0, "clip", 4*PPQ) // starts on bar two at 120 BPM
	clip.AddNote(MidiNote{ID: 1, NoteNumber: 60, Velocity: 100, StartTick: 0, DurationTicks: PPQ})
	track.AddClip(clip)

	out := track.Render(0, 512, 120, false)
	if p, _ := out.Peak(); p != 0 {
		t.Fatalf("note before its clip offset sounded: %v", p)
	}

	// 4*PPQ at 120 BPM = 2 s = 88200 frames.
	startBlock := 88200 / 512
	for block := 1; block <= startBlock; block++ {
		out = track.Render(block*512, 512, 120, false)
	}
	if bank.ActiveVoices() != 1 {
		t.Fatalf("offset note never started: %d active voices", bank.ActiveVoices())
	}
}

func TestMidiTrackResetSilencesBank(t *testing.T) {
	bank := NewSynthVoiceBank(8, testRate)
	track := NewMidiTrack(0, "resettable", bank, 512, 2, testRate)
	clip := NewMidiClip(0, "clip", 0)
	clip.AddNote(MidiNote{ID: 1, NoteNumber: 60, Velocity: 100, StartTick: 0, DurationTicks: 4 * PPQ})
	track.AddClip(clip)

	track.Render(0, 512, 120, false)
	if bank.ActiveVoices() != 1 {
		t.Fatal("setup: note did not start")
	}

	track.Reset()
	if bank.ActiveVoices() != 0 {
		t.Fatalf("reset left %d voices active", bank.ActiveVoices())
	}
	if len(track.activeNotes) != 0 {
		t.Fatalf("reset left %d ids in activeNotes", len(track.activeNotes))
	}
}
