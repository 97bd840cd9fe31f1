// sampler_voice_bank_test.go - Sample playback, interpolation and loop tests

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

import "testing"

func rampZone(n int, mode LoopMode) SamplerZone {
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i) / float32(n)
	}
	return SamplerZone{
		Data:       data,
		SampleRate: testRate,
		SampleEnd:  n,
		LoopStart:  n / 4,
		LoopEnd:    n / 2,
		RootKey:    60,
		Mode:       mode,
	}
}

func TestSamplerRootKeyPlaysAtUnityRate(t *testing.T) {
	bank := NewSamplerVoiceBank(8, testRate, rampZone(10000, LOOP_NONE))
	bank.NoteOn(60, 127)

	var rate float64
	for i := range bank.voices {
		if bank.voices[i].active {
			rate = bank.voices[i].rate
		}
	}
	if rate != 1 {
		t.Fatalf("root key at matching rates must play at 1.0, got %v", rate)
	}

	bank.AllNotesOff()
	bank.NoteOn(72, 127)
	for i := range bank.voices {
		if bank.voices[i].active {
			rate = bank.voices[i].rate
		}
	}
	if rate != 2 {
		t.Fatalf("one octave above the root must double the rate, got %v", rate)
	}
}

func TestSamplerEndOfSampleDeactivates(t *testing.T) {
	bank := NewSamplerVoiceBank(8, testRate, rampZone(1000, LOOP_NONE))
	bank.NoteOn(60, 127)

	out := NewAudioBuffer(512, 1)
	bank.Render(out)
	if got := bank.ActiveVoices(); got != 1 {
		t.Fatalf("voice should still be inside the sample, got %d active", got)
	}

	out.Clear()
	bank.Render(out)
	if got := bank.ActiveVoices(); got != 0 {
		t.Fatalf("voice must deactivate at sample end, got %d active", got)
	}
}

func TestSamplerForwardLoopSustains(t *testing.T) {
	t.Log("a forward loop must keep the voice alive well past the sample length")

	bank := NewSamplerVoiceBank(8, testRate, rampZone(1000, LOOP_FORWARD))
	bank.NoteOn(60, 127)

	out := NewAudioBuffer(512, 1)
	for block := 0; block < 20; block++ {
		out.Clear()
		bank.Render(out)
	}
	if got := bank.ActiveVoices(); got != 1 {
		t.Fatalf("looped voice died: %d active", got)
	}
}

func TestSamplerPingPongStaysInLoop(t *testing.T) {
	bank := NewSamplerVoiceBank(8, testRate, rampZone(1000, LOOP_PINGPONG))
	bank.NoteOn(60, 127)

	out := NewAudioBuffer(512, 1)
	for block := 0; block < 20; block++ {
		out.Clear()
		bank.Render(out)
	}

	for i := range bank.voices {
		v := &bank.voices[i]
		if v.active {
			if v.pos < float64(bank.zone.LoopStart)-1 || v.pos > float64(bank.zone.LoopEnd)+1 {
				t.Fatalf("ping-pong position %v escaped the loop [%d, %d]",
					v.pos, bank.zone.LoopStart, bank.zone.LoopEnd)
			}
			return
		}
	}
	t.Fatal("ping-pong voice died")
}

func TestSamplerReleaseEndsVoice(t *testing.T) {
	bank := NewSamplerVoiceBank(8, testRate, rampZone(testRate*2, LOOP_FORWARD))
	bank.NoteOn(60, 127)

	out := NewAudioBuffer(512, 1)
	bank.Render(out)
	bank.NoteOff(60)

	// 300 ms release plus one block of margin.
	blocks := int(0.3*testRate)/512 + 2
	for block := 0; block < blocks; block++ {
		out.Clear()
		bank.Render(out)
	}
	if got := bank.ActiveVoices(); got != 0 {
		t.Fatalf("voice still active after the release window: %d", got)
	}
}
