// midi_clip_test.go - Note model, tick windows and musical time tests

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

func TestMidiClipCoveredDuplicateTrim(t *testing.T) {
	t.Log("inserting a covering note removes fully-covered same-pitch notes")

	clip := NewMidiClip(0, "test", 0)
	clip.AddNote(MidiNote{ID: 1, NoteNumber: 60, Velocity: 100, StartTick: 100, DurationTicks: 50})
	clip.AddNote(MidiNote{ID: 2, NoteNumber: 60, Velocity: 100, StartTick: 0, DurationTicks: 480})

	notes := clip.Notes()
	if len(notes) != 1 || notes[0].ID != 2 {
		t.Fatalf("covered note must be removed, have %d notes", len(notes))
	}
}

func TestMidiClipPartialOverlapKept(t *testing.T) {
	clip := NewMidiClip(0, "test", 0)
	clip.AddNote(MidiNote{ID: 1, NoteNumber: 60, Velocity: 100, StartTick: 0, DurationTicks: 200})
	clip.AddNote(MidiNote{ID: 2, NoteNumber: 60, Velocity: 100, StartTick: 100, DurationTicks: 300})

	if len(clip.Notes()) != 2 {
		t.Fatalf("partial same-pitch overlap must be accepted unchanged, have %d notes", len(clip.Notes()))
	}
}

func TestMidiClipSameStartSamePitchReplaced(t *testing.T) {
	clip := NewMidiClip(0, "test", 0)
	clip.AddNote(MidiNote{ID: 1, NoteNumber: 60, Velocity: 100, StartTick: 0, DurationTicks: 100})
	clip.AddNote(MidiNote{ID: 2, NoteNumber: 60, Velocity: 80, StartTick: 0, DurationTicks: 200})

	notes := clip.Notes()
	if len(notes) != 1 || notes[0].ID != 2 {
		t.Fatalf("no two notes may share (pitch, start); have %d notes", len(notes))
	}
}

func TestMidiClipWindowEvents(t *testing.T) {
	clip := NewMidiClip(0, "test", 0)
	clip.AddNote(MidiNote{ID: 1, NoteNumber: 64, Velocity: 100, StartTick: 0, DurationTicks: 480})
	clip.AddNote(MidiNote{ID: 2, NoteNumber: 60, Velocity: 100, StartTick: 0, DurationTicks: 240})
	clip.AddNote(MidiNote{ID: 3, NoteNumber: 67, Velocity: 100, StartTick: 480, DurationTicks: 480})

	ons := clip.NoteOnEvents(0, 480)
	if len(ons) != 2 {
		t.Fatalf("want 2 onsets in [0, 480), got %d", len(ons))
	}
	if ons[0].NoteNumber != 60 || ons[1].NoteNumber != 64 {
		t.Fatalf("ties must order by (start, pitch): got %d then %d", ons[0].NoteNumber, ons[1].NoteNumber)
	}

	offs := clip.NoteOffEvents(0, 480)
	if len(offs) != 1 || offs[0].ID != 2 {
		t.Fatalf("want only the 240-tick note ending in [0, 480), got %d events", len(offs))
	}

	ons = clip.NoteOnEvents(480, 960)
	if len(ons) != 1 || ons[0].ID != 3 {
		t.Fatalf("want 1 onset in [480, 960), got %d", len(ons))
	}
}

func TestMidiClipLength(t *testing.T) {
	clip := NewMidiClip(0, "empty", 0)
	if got := clip.LengthTicks(); got != WHOLE_NOTE_TICKS {
		t.Fatalf("empty clip length = %d, want one whole note (%d)", got, WHOLE_NOTE_TICKS)
	}

	clip.AddNote(MidiNote{ID: 1, NoteNumber: 60, Velocity: 100, StartTick: 480, DurationTicks: 240})
	if got := clip.LengthTicks(); got != 720 {
		t.Fatalf("content length = %d, want 720", got)
	}

	clip.SetLengthTicks(1920)
	if got := clip.LengthTicks(); got != 1920 {
		t.Fatalf("pinned length = %d, want 1920", got)
	}
}

func TestTickFrameConversionRoundTrip(t *testing.T) {
	for _, bpm := range []float64{60, 120, 174, 33.3} {
		frames := TicksToFrames(PPQ, bpm, testRate)
		wantSeconds := 60.0 / bpm
		gotSeconds := float64(frames) / testRate
		if math.Abs(gotSeconds-wantSeconds) > 1.0/testRate {
			t.Fatalf("bpm %v: one beat = %v s, want %v s", bpm, gotSeconds, wantSeconds)
		}
	}
}

func TestTickWindowRateIndependence(t *testing.T) {
	t.Log("the tick window of one block must match bufferFrames*bpm*PPQ/(60*rate) within a tick")

	const bufferFrames = 512
	for _, bpm := range []float64{60, 90, 120, 140, 174} {
		for block := 0; block < 200; block++ {
			startFrame := block * bufferFrames
			from := SecondsToTicks(float64(startFrame)/testRate, bpm)
			to := SecondsToTicks(float64(startFrame+bufferFrames)/testRate, bpm)

			ideal := bufferFrames * bpm * PPQ / (60 * testRate)
			if math.Abs(float64(to-from)-ideal) > 1 {
				t.Fatalf("bpm %v block %d: window %d ticks, ideal %v", bpm, block, to-from, ideal)
			}
		}
	}
}
