// master_mixer_test.go - Track summing, solo interaction and metering tests

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

// dcTrack builds a mono track playing a constant level from frame 0.
func dcTrack(id int, level float32, frames int) *AudioTrack {
	track := NewAudioTrack(id, "dc", frames, 1, testRate)
	track.AddClip(NewAudioClip(0, dcBuffer(frames, 1, level), 0))
	return track
}

func TestMuteSoloInteraction(t *testing.T) {
	t.Log("three DC tracks at 0.1/0.2/0.3 across the solo and mute matrix")

	mixer := NewMasterMixer(512, 1, testRate)
	a := dcTrack(0, 0.1, 512)
	b := dcTrack(1, 0.2, 512)
	c := dcTrack(2, 0.3, 512)
	mixer.AddAudioTrack(a)
	mixer.AddAudioTrack(b)
	mixer.AddAudioTrack(c)

	checkLevel := func(desc string, want float32) {
		t.Helper()
		out := mixer.Render(0, 512)
		if got := out.Sample(0, 0); math.Abs(float64(got-want)) > 1e-6 {
			t.Fatalf("%s: master frame = %v, want %v", desc, got, want)
		}
	}

	checkLevel("no solo", 0.6)

	b.Soloed = true
	checkLevel("B soloed", 0.2)

	b.Muted = true
	checkLevel("B soloed and muted", 0)

	b.Muted = false
	b.Soloed = false
	a.Soloed = true
	c.Soloed = true
	checkLevel("A and C soloed", 0.4)
}

func TestMixOrderIndependence(t *testing.T) {
	t.Log("with an empty master chain, track order must not change the sum")

	forward := NewMasterMixer(256, 1, testRate)
	forward.AddAudioTrack(dcTrack(0, 0.1, 256))
	forward.AddAudioTrack(dcTrack(1, 0.25, 256))
	fwd := make([]float32, 256)
	copy(fwd, forward.Render(0, 256).Data())

	reverse := NewMasterMixer(256, 1, testRate)
	reverse.AddAudioTrack(dcTrack(1, 0.25, 256))
	reverse.AddAudioTrack(dcTrack(0, 0.1, 256))
	rev := reverse.Render(0, 256).Data()

	for i := range fwd {
		if fwd[i] != rev[i] {
			t.Fatalf("sample %d: %v != %v", i, fwd[i], rev[i])
		}
	}
}

func TestEmptyProjectIsSilent(t *testing.T) {
	mixer := NewMasterMixer(512, 2, testRate)
	out := mixer.Render(0, 512)

	if p, _ := out.Peak(); p != 0 {
		t.Fatalf("empty project peak = %v", p)
	}
	meters := mixer.LastMeters()
	if meters.LeftPeak != 0 || meters.RightPeak != 0 || meters.LeftRMS != 0 || meters.RightRMS != 0 {
		t.Fatalf("empty project meters = %+v", meters)
	}
}

func TestMasterClampAndMeters(t *testing.T) {
	mixer := NewMasterMixer(256, 1, testRate)
	mixer.AddAudioTrack(dcTrack(0, 0.9, 256))
	mixer.AddAudioTrack(dcTrack(1, 0.9, 256))

	out := mixer.Render(0, 256)
	if got := out.Sample(0, 0); got != 1 {
		t.Fatalf("1.8 pre-clamp must clamp to 1, got %v", got)
	}
	meters := mixer.LastMeters()
	if meters.LeftPeak != 1 {
		t.Fatalf("meter peak = %v, want 1", meters.LeftPeak)
	}
}

func TestMasterGainApplied(t *testing.T) {
	mixer := NewMasterMixer(256, 1, testRate)
	mixer.AddAudioTrack(dcTrack(0, 0.5, 256))
	mixer.SetMasterGain(0.5)

	out := mixer.Render(0, 256)
	if got := out.Sample(0, 0); math.Abs(float64(got)-0.25) > 1e-6 {
		t.Fatalf("master gain: got %v, want 0.25", got)
	}
}

func TestTotalDurationAcrossTrackKinds(t *testing.T) {
	mixer := NewMasterMixer(512, 2, testRate)
	mixer.SetBPM(120)

	audio := NewAudioTrack(0, "a", 512, 2, testRate)
	audio.AddClip(NewAudioClip(0, dcBuffer(1000, 2, 0.1), 500))
	mixer.AddAudioTrack(audio)

	bank := NewSynthVoiceBank(8, testRate)
	midi := NewMidiTrack(1, "m", bank, 512, 2, testRate)
	clip := NewMidiClip(0, "c", 0)
	clip.AddNote(MidiNote{ID: 1, NoteNumber: 60, Velocity: 100, StartTick: 0, DurationTicks: 2 * PPQ})
	midi.AddClip(clip)
	mixer.AddMidiTrack(midi)

	// Audio ends at frame 1500; two beats at 120 BPM end at 1 s = 44100.
	if got := mixer.TotalDurationFrames(); got != 44100 {
		t.Fatalf("total duration = %d, want 44100", got)
	}

	mixer.RemoveMidiTrack(1)
	if got := mixer.TotalDurationFrames(); got != 1500 {
		t.Fatalf("after removing the midi track: %d, want 1500", got)
	}
}

func TestResetAllRestoresSilence(t *testing.T) {
	t.Log("after a reset, rendering silence must produce all-zero output")

	mixer := NewMasterMixer(512, 1, testRate)

	bank := NewSynthVoiceBank(8, testRate)
	midi := NewMidiTrack(0, "m", bank, 512, 1, testRate)
	clip := NewMidiClip(0, "c", 0)
	clip.AddNote(MidiNote{ID: 1, NoteNumber: 60, Velocity: 100, StartTick: 0, DurationTicks: 8 * PPQ})
	midi.AddClip(clip)
	echo := NewEffect(EFFECT_DELAY)
	_ = echo.SetParam(DELAY_PARAM_MIX, 0.5)
	_ = midi.Chain().Add(echo)
	mixer.AddMidiTrack(midi)

	room := NewEffect(EFFECT_REVERB)
	_ = room.SetParam(REVERB_PARAM_MIX, 0.5)
	_ = mixer.MasterChain().Add(room)

	out := mixer.Render(0, 512)
	if p, _ := out.Peak(); p == 0 {
		t.Fatal("setup: expected sound before the reset")
	}

	mixer.ResetAll()

	// Render a window far past the note so nothing retriggers.
	out = mixer.Render(testRate*100, 512)
	if p, _ := out.Peak(); p != 0 {
		t.Fatalf("post-reset output is not silent: peak %v", p)
	}
	if bank.ActiveVoices() != 0 {
		t.Fatalf("post-reset voices: %d", bank.ActiveVoices())
	}
}
