// transport.go - Playback state machine and frame cursor

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

import "sync/atomic"

type TransportState int32

const (
	TRANSPORT_STOPPED TransportState = iota
	TRANSPORT_PLAYING
	TRANSPORT_PAUSED
)

func (s TransportState) String() string {
	switch s {
	case TRANSPORT_STOPPED:
		return "stopped"
	case TRANSPORT_PLAYING:
		return "playing"
	case TRANSPORT_PAUSED:
		return "paused"
	}
	return "unknown"
}

// Transport holds the playback state and frame cursor. Both are written by
// the render worker only; atomics let control actors observe them without
// locks.
//
// Invariants: Stopped pins the cursor at 0 (a seek while stopped moves it,
// play from there resumes at the seek point); Paused freezes it; Playing
// advances it by exactly one block of frames per rendered block until
// end of project.
type Transport struct {
	state  atomic.Int32
	cursor atomic.Int64
}

func NewTransport() *Transport {
	return &Transport{}
}

func (t *Transport) State() TransportState {
	return TransportState(t.state.Load())
}

func (t *Transport) Cursor() int64 {
	return t.cursor.Load()
}

// The setters below are render-worker side only.

func (t *Transport) setState(s TransportState) { t.state.Store(int32(s)) }
func (t *Transport) setCursor(frame int64)     { t.cursor.Store(frame) }
func (t *Transport) advance(frames int64)      { t.cursor.Add(frames) }
