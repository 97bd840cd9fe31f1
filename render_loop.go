// render_loop.go - Deadline-bound render worker

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
	"sync/atomic"
	"time"
)

// PARK_TIMEOUT bounds how long the worker sleeps while not playing before
// re-checking the command queue.
const PARK_TIMEOUT = 100 * time.Millisecond

// IDLE_PACE_FACTOR rate-limits rendering when no sink applies back-pressure,
// leaving headroom under the real-time deadline.
const IDLE_PACE_FACTOR = 0.8

// renderLoop is the time-critical worker of §the engine: it drains commands,
// renders blocks, publishes telemetry and paces itself against the sink.
// During Playing it performs no heap allocation, no I/O and no logging.
type renderLoop struct {
	mixer     *MasterMixer
	commands  *CommandChannel
	telemetry *TelemetryChannel
	transport *Transport
	ring      *OutputRing // nil when no sink is attached

	bufferFrames int
	channels     int
	sampleRate   int

	// Double buffer behind CurrentOutputBuffer: the loop copies each block
	// into the buffer not currently published, then swaps the pointer.
	outA, outB *AudioBuffer
	current    atomic.Pointer[AudioBuffer]

	wake   chan struct{} // signalled by Enqueue so parked workers drain promptly
	stopCh chan struct{}
	done   chan struct{}

	parkTimer *time.Timer
	blockDur  time.Duration
}

func newRenderLoop(mixer *MasterMixer, commands *CommandChannel, telemetry *TelemetryChannel,
	transport *Transport, ring *OutputRing, bufferFrames, channels, sampleRate int) *renderLoop {

	l := &renderLoop{
		mixer:        mixer,
		commands:     commands,
		telemetry:    telemetry,
		transport:    transport,
		ring:         ring,
		bufferFrames: bufferFrames,
		channels:     channels,
		sampleRate:   sampleRate,
		outA:         NewAudioBuffer(bufferFrames, channels),
		outB:         NewAudioBuffer(bufferFrames, channels),
		wake:         make(chan struct{}, 1),
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
		blockDur:     time.Duration(float64(bufferFrames) / float64(sampleRate) * float64(time.Second)),
	}
	l.current.Store(l.outA)
	return l
}

func (l *renderLoop) run() {
	defer close(l.done)

	l.parkTimer = time.NewTimer(PARK_TIMEOUT)
	defer l.parkTimer.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		default:
		}

		l.drainCommands()

		if l.transport.State() != TRANSPORT_PLAYING {
			l.park()
			continue
		}

		cursor := l.transport.Cursor()
		total := int64(l.mixer.TotalDurationFrames())

		advance := int64(l.bufferFrames)
		if total > 0 && cursor+advance > total {
			advance = total - cursor
			if advance < 0 {
				advance = 0
			}
		}

		block := l.mixer.Render(int(cursor), l.bufferFrames)
		if block == nil {
			// Implementation bug, not a recoverable anomaly: report through
			// the diagnostic slot and stop rendering.
			l.telemetry.SetDiagnostic(DIAG_NIL_MASTER_BUFFER)
			l.transport.setState(TRANSPORT_STOPPED)
			l.transport.setCursor(0)
			continue
		}

		meters := l.mixer.LastMeters()
		l.telemetry.Publish(Telemetry{
			LeftPeak:    meters.LeftPeak,
			RightPeak:   meters.RightPeak,
			LeftRMS:     meters.LeftRMS,
			RightRMS:    meters.RightRMS,
			FrameCursor: cursor,
			Anomalies:   l.mixer.Anomalies(),
		})

		l.emit(block)

		l.transport.advance(advance)

		// End of project stops and rewinds but, unlike Stop/Seek, does not
		// reset DSP state: tails keep ringing into the next Play.
		if total > 0 && l.transport.Cursor() >= total {
			l.transport.setState(TRANSPORT_STOPPED)
			l.transport.setCursor(0)
		}
	}
}

// emit publishes the block for polling observers and pushes it to the sink.
// With no sink attached the loop self-paces below the real-time deadline.
func (l *renderLoop) emit(block *AudioBuffer) {
	next := l.outA
	if l.current.Load() == l.outA {
		next = l.outB
	}
	next.CopyFrom(block)
	l.current.Store(next)

	if l.ring != nil {
		l.ring.WriteBlock(block.Data(), l.stopCh)
		return
	}
	l.sleep(time.Duration(IDLE_PACE_FACTOR * float64(l.blockDur)))
}

// park waits for a wake signal, a stop signal, or the park timeout.
func (l *renderLoop) park() {
	if !l.parkTimer.Stop() {
		select {
		case <-l.parkTimer.C:
		default:
		}
	}
	l.parkTimer.Reset(PARK_TIMEOUT)
	select {
	case <-l.stopCh:
	case <-l.wake:
	case <-l.parkTimer.C:
	}
}

func (l *renderLoop) sleep(d time.Duration) {
	if !l.parkTimer.Stop() {
		select {
		case <-l.parkTimer.C:
		default:
		}
	}
	l.parkTimer.Reset(d)
	select {
	case <-l.stopCh:
	case <-l.parkTimer.C:
	}
}

// drainCommands applies every pending command in FIFO order. Everything
// enqueued before this call is observed before the next block renders.
func (l *renderLoop) drainCommands() {
	for {
		cmd, ok := l.commands.Dequeue()
		if !ok {
			return
		}
		l.apply(cmd)
	}
}

func (l *renderLoop) apply(cmd Command) {
	switch cmd.Type {
	case CMD_PLAY:
		if l.transport.State() != TRANSPORT_PLAYING {
			l.transport.setState(TRANSPORT_PLAYING)
		}
	case CMD_PAUSE:
		if l.transport.State() == TRANSPORT_PLAYING {
			l.transport.setState(TRANSPORT_PAUSED)
		}
	case CMD_STOP:
		l.transport.setState(TRANSPORT_STOPPED)
		l.transport.setCursor(0)
		l.mixer.ResetAll()
	case CMD_SEEK:
		frame := int64(cmd.Frame)
		if frame < 0 {
			frame = 0
		}
		l.transport.setCursor(frame)
		if l.transport.State() != TRANSPORT_STOPPED {
			l.mixer.ResetAll()
		}
	case CMD_SET_PARAM:
		l.applySetParam(cmd.Target, cmd.Value)
	case CMD_MIDI_ON:
		if t := l.mixer.MidiTrackByID(cmd.Target.Track); t != nil {
			t.Bank().NoteOn(cmd.Note, cmd.Velocity)
		}
	case CMD_MIDI_OFF:
		if t := l.mixer.MidiTrackByID(cmd.Target.Track); t != nil {
			t.Bank().NoteOff(cmd.Note)
		}
	}
}

// applySetParam routes a parameter write to the master chain, a track
// chain, or a voice bank. Unresolvable targets are ignored; the worker
// never propagates errors upward.
func (l *renderLoop) applySetParam(target TargetRef, value float32) {
	if target.Track < 0 {
		if e := l.mixer.MasterChain().At(target.Effect); e != nil {
			_ = e.SetParam(target.Param, value)
		}
		return
	}
	if t := l.mixer.MidiTrackByID(target.Track); t != nil {
		if target.Effect < 0 {
			_ = t.Bank().SetParam(target.Param, value)
		} else if e := t.Chain().At(target.Effect); e != nil {
			_ = e.SetParam(target.Param, value)
		}
		return
	}
	if t := l.mixer.AudioTrackByID(target.Track); t != nil {
		if e := t.Chain().At(target.Effect); e != nil {
			_ = e.SetParam(target.Param, value)
		}
	}
}
