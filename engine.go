// engine.go - Engine construction, control surface and teardown

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
	"time"
)

// DISPOSE_JOIN_TIMEOUT bounds how long Dispose waits for the render worker;
// a hung worker is leaked rather than blocking the host indefinitely.
const DISPOSE_JOIN_TIMEOUT = 2 * time.Second

// Engine owns the render worker, the mixer graph, both SPSC channels and
// the attached sink. Construction validates the config; every size is
// immutable afterwards.
type Engine struct {
	cfg       EngineConfig
	mixer     *MasterMixer
	commands  *CommandChannel
	telemetry *TelemetryChannel
	transport *Transport
	loop      *renderLoop
	ring      *OutputRing
	output    AudioOutput

	started bool
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mixer := NewMasterMixer(cfg.BufferFrames, cfg.Channels, cfg.SampleRate)
	commands := NewCommandChannel(cfg.CommandCapacity)
	telemetry := NewTelemetryChannel(cfg.TelemetryCapacity)
	transport := NewTransport()

	var ring *OutputRing
	var output AudioOutput
	if cfg.Backend != "none" {
		ring = NewOutputRing(cfg.BufferFrames * cfg.Channels)
		out, err := NewAudioOutput(cfg.Backend, cfg, ring)
		if err != nil {
			return nil, err
		}
		output = out
		if output == nil {
			ring = nil
		}
	}

	e := &Engine{
		cfg:       cfg,
		mixer:     mixer,
		commands:  commands,
		telemetry: telemetry,
		transport: transport,
		ring:      ring,
		output:    output,
	}
	e.loop = newRenderLoop(mixer, commands, telemetry, transport, ring,
		cfg.BufferFrames, cfg.Channels, cfg.SampleRate)
	return e, nil
}

func (e *Engine) Config() EngineConfig                { return e.cfg }
func (e *Engine) Mixer() *MasterMixer                 { return e.mixer }
func (e *Engine) Transport() *Transport               { return e.transport }
func (e *Engine) TelemetryChannel() *TelemetryChannel { return e.telemetry }

// Start launches the render worker and the sink.
func (e *Engine) Start() error {
	if e.started {
		return nil
	}
	if e.output != nil {
		if err := e.output.Start(); err != nil {
			return err
		}
	}
	go e.loop.run()
	e.started = true
	return nil
}

// Dispose signals the worker to exit, joins with a timeout, then releases
// the sink. A worker that misses the timeout is leaked by design.
func (e *Engine) Dispose() {
	if !e.started {
		if e.output != nil {
			e.output.Close()
		}
		return
	}
	close(e.loop.stopCh)
	select {
	case <-e.loop.done:
	case <-time.After(DISPOSE_JOIN_TIMEOUT):
	}
	if e.output != nil {
		e.output.Stop()
		e.output.Close()
	}
	e.started = false
}

// EnqueueCommand is the raw control-surface entry; it fails fast with
// ErrQueueFull and wakes a parked worker on success.
func (e *Engine) EnqueueCommand(cmd Command) error {
	if err := e.commands.Enqueue(cmd); err != nil {
		return err
	}
	select {
	case e.loop.wake <- struct{}{}:
	default:
	}
	return nil
}

func (e *Engine) Play() error  { return e.EnqueueCommand(Command{Type: CMD_PLAY}) }
func (e *Engine) Pause() error { return e.EnqueueCommand(Command{Type: CMD_PAUSE}) }
func (e *Engine) Stop() error  { return e.EnqueueCommand(Command{Type: CMD_STOP}) }

func (e *Engine) Seek(frame int) error {
	return e.EnqueueCommand(Command{Type: CMD_SEEK, Frame: frame})
}

func (e *Engine) SetParam(target TargetRef, value float32) error {
	return e.EnqueueCommand(Command{Type: CMD_SET_PARAM, Target: target, Value: value})
}

// MidiOn injects a live note; it takes effect at the next block boundary.
func (e *Engine) MidiOn(trackID, note, velocity int) error {
	return e.EnqueueCommand(Command{
		Type:     CMD_MIDI_ON,
		Target:   TargetRef{Track: trackID},
		Note:     note,
		Velocity: velocity,
	})
}

func (e *Engine) MidiOff(trackID, note int) error {
	return e.EnqueueCommand(Command{
		Type:   CMD_MIDI_OFF,
		Target: TargetRef{Track: trackID},
		Note:   note,
	})
}

// LatestTelemetry drains to the most recent record.
func (e *Engine) LatestTelemetry() (Telemetry, bool) {
	return e.telemetry.Latest()
}

// CurrentOutputBuffer returns the most recently rendered block for polling
// hosts; the engine retains ownership of the buffer.
func (e *Engine) CurrentOutputBuffer() *AudioBuffer {
	return e.loop.current.Load()
}

// SetClipSource replaces an audio clip's source buffer. Legal only while
// the transport is stopped; the render worker reads sources without locks.
func (e *Engine) SetClipSource(clip *AudioClip, source *AudioBuffer) error {
	if e.transport.State() != TRANSPORT_STOPPED {
		return ErrNotStopped
	}
	clip.Source = source
	return nil
}
