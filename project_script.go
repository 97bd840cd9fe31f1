// project_script.go - Lua project builder for the data model

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

	lua "github.com/yuin/gopher-lua"
)

// projectBuilder accumulates ids while a script runs. Scripts execute on the
// control side and only while the transport is stopped.
type projectBuilder struct {
	engine     *Engine
	nextTrack  int
	nextClip   int
	nextNote   int
	midiClips  map[int]*MidiClip
	waveByName map[string]Waveform
}

// BuildProjectFromScript executes a Lua project script against the engine's
// data model. The script drives functions on the global `wavecraft` table:
//
//	wavecraft.bpm(128)
//	wavecraft.master_gain(0.9)
//	local lead = wavecraft.midi_track{name="lead", wave="saw", attack=0.01}
//	wavecraft.note(lead, 60, 100, 0, 480)
//	local drums = wavecraft.audio_track{name="drums", file="loop.wav"}
//	wavecraft.effect(lead, "delay", {delayMs=350, feedback=0.4, mix=0.3})
//	wavecraft.effect(-1, "reverb", {roomSize=0.8})
func BuildProjectFromScript(path string, e *Engine) error {
	if e.Transport().State() != TRANSPORT_STOPPED {
		return ErrNotStopped
	}

	b := &projectBuilder{
		engine:    e,
		midiClips: make(map[int]*MidiClip),
		waveByName: map[string]Waveform{
			"sine":     WAVE_SINE,
			"saw":      WAVE_SAW,
			"square":   WAVE_SQUARE,
			"triangle": WAVE_TRIANGLE,
		},
	}

	L := lua.NewState()
	defer L.Close()

	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"bpm":         b.luaBPM,
		"master_gain": b.luaMasterGain,
		"midi_track":  b.luaMidiTrack,
		"audio_track": b.luaAudioTrack,
		"note":        b.luaNote,
		"effect":      b.luaEffect,
	})
	L.SetGlobal("wavecraft", mod)

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("project script: %w", err)
	}
	return nil
}

func tableString(tbl *lua.LTable, key, def string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return def
}

func tableNumber(tbl *lua.LTable, key string, def float64) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

func (b *projectBuilder) luaBPM(L *lua.LState) int {
	b.engine.Mixer().SetBPM(float64(L.CheckNumber(1)))
	return 0
}

func (b *projectBuilder) luaMasterGain(L *lua.LState) int {
	b.engine.Mixer().SetMasterGain(float32(L.CheckNumber(1)))
	return 0
}

// luaMidiTrack creates a synth-backed MIDI track with one clip at tick 0 and
// returns the track id.
func (b *projectBuilder) luaMidiTrack(L *lua.LState) int {
	tbl := L.CheckTable(1)
	cfg := b.engine.Config()

	bank := NewSynthVoiceBank(cfg.MaxVoicesPerSynth, cfg.SampleRate)
	if w, ok := b.waveByName[tableString(tbl, "wave", "saw")]; ok {
		bank.SetWaveform(w)
	}
	bank.SetADSR(
		float32(tableNumber(tbl, "attack", 0.01)),
		float32(tableNumber(tbl, "decay", 0.1)),
		float32(tableNumber(tbl, "sustain", 0.7)),
		float32(tableNumber(tbl, "release", 0.2)),
	)
	bank.SetDetuneCents(float32(tableNumber(tbl, "detune", 4)))
	bank.SetMasterVolume(float32(tableNumber(tbl, "volume", 0.3)))

	id := b.nextTrack
	b.nextTrack++
	track := NewMidiTrack(id, tableString(tbl, "name", fmt.Sprintf("midi %d", id)),
		bank, cfg.BufferFrames, cfg.Channels, cfg.SampleRate)
	track.Volume = float32(tableNumber(tbl, "track_volume", 1))
	track.Pan = float32(tableNumber(tbl, "pan", 0))

	clip := NewMidiClip(b.nextClip, track.Name, int(tableNumber(tbl, "start_tick", 0)))
	b.nextClip++
	track.AddClip(clip)
	b.midiClips[id] = clip

	b.engine.Mixer().AddMidiTrack(track)
	L.Push(lua.LNumber(id))
	return 1
}

// luaAudioTrack loads a WAV source and creates a one-clip audio track,
// returning the track id.
func (b *projectBuilder) luaAudioTrack(L *lua.LState) int {
	tbl := L.CheckTable(1)
	cfg := b.engine.Config()

	id := b.nextTrack
	b.nextTrack++
	track := NewAudioTrack(id, tableString(tbl, "name", fmt.Sprintf("audio %d", id)),
		cfg.BufferFrames, cfg.Channels, cfg.SampleRate)
	track.Volume = float32(tableNumber(tbl, "track_volume", 1))
	track.Pan = float32(tableNumber(tbl, "pan", 0))

	if file := tableString(tbl, "file", ""); file != "" {
		source, err := LoadWAV(file, cfg)
		if err != nil {
			L.RaiseError("audio_track: %v", err)
			return 0
		}
		clip := NewAudioClip(b.nextClip, source, int(tableNumber(tbl, "start_frame", 0)))
		b.nextClip++
		clip.Volume = float32(tableNumber(tbl, "clip_volume", 1))
		clip.TrimStartFrame = int(tableNumber(tbl, "trim_start", 0))
		clip.DurationFrames = int(tableNumber(tbl, "duration", 0))
		track.AddClip(clip)
	}

	b.engine.Mixer().AddAudioTrack(track)
	L.Push(lua.LNumber(id))
	return 1
}

// luaNote adds a note to a MIDI track's clip: note(track, key, vel, startTick, durTicks).
func (b *projectBuilder) luaNote(L *lua.LState) int {
	trackID := L.CheckInt(1)
	clip, ok := b.midiClips[trackID]
	if !ok {
		L.RaiseError("note: track %d is not a midi track", trackID)
		return 0
	}
	clip.AddNote(MidiNote{
		ID:            b.nextNote,
		NoteNumber:    L.CheckInt(2),
		Velocity:      L.CheckInt(3),
		StartTick:     L.CheckInt(4),
		DurationTicks: L.CheckInt(5),
	})
	b.nextNote++
	return 0
}

// luaEffect appends an effect to a track chain (or the master chain for
// track -1) and applies named parameters from the options table.
func (b *projectBuilder) luaEffect(L *lua.LState) int {
	trackID := L.CheckInt(1)
	kindName := L.CheckString(2)
	opts := L.OptTable(3, L.NewTable())

	kind, ok := EffectTypeByName(kindName)
	if !ok {
		L.RaiseError("effect: unknown type %q", kindName)
		return 0
	}
	effect := NewEffect(kind)
	opts.ForEach(func(k, v lua.LValue) {
		name, nok := k.(lua.LString)
		value, vok := v.(lua.LNumber)
		if nok && vok {
			if err := effect.SetParamByName(string(name), float32(value)); err != nil {
				L.RaiseError("effect: %v", err)
			}
		}
	})

	var chain *EffectChain
	switch {
	case trackID < 0:
		chain = b.engine.Mixer().MasterChain()
	default:
		if t := b.engine.Mixer().MidiTrackByID(trackID); t != nil {
			chain = t.Chain()
		} else if t := b.engine.Mixer().AudioTrackByID(trackID); t != nil {
			chain = t.Chain()
		}
	}
	if chain == nil {
		L.RaiseError("effect: no track %d", trackID)
		return 0
	}
	if err := chain.Add(effect); err != nil {
		L.RaiseError("effect: %v", err)
		return 0
	}
	return 0
}
