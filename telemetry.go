// telemetry.go - Latest-wins telemetry ring, render side to observers

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

// Telemetry summarises the last rendered block. Value-like; owned by the
// slot it sits in.
type Telemetry struct {
	LeftPeak    float32
	RightPeak   float32
	LeftRMS     float32
	RightRMS    float32
	FrameCursor int64
	Anomalies   uint64
}

// Diagnostic codes for the preallocated out-of-band slot. The render worker
// stores a code instead of formatting a message; the observer side maps it
// to text. Nothing on the worker allocates.
const (
	DIAG_NONE int32 = iota
	DIAG_NIL_MASTER_BUFFER
	DIAG_RENDER_STOPPED
)

var diagnosticMessages = map[int32]string{
	DIAG_NONE:              "",
	DIAG_NIL_MASTER_BUFFER: "master buffer unexpectedly nil; rendering stopped",
	DIAG_RENDER_STOPPED:    "render worker stopped after internal inconsistency",
}

// telemetrySlot pairs a record with a sequence number so the consumer can
// detect a concurrent overwrite and retry (seqlock style). seq is
// 2*pos+1 while the producer writes and 2*pos+2 once the record is stable.
type telemetrySlot struct {
	seq  atomic.Uint64
	data Telemetry
}

// TelemetryChannel is a single-producer ring where overflow overwrites the
// oldest record: the producer never blocks and the consumer only ever wants
// the most recent record.
type TelemetryChannel struct {
	slots []telemetrySlot
	mask  uint64
	tail  atomic.Uint64 // next write position
	diag  atomic.Int32
}

func NewTelemetryChannel(capacity int) *TelemetryChannel {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &TelemetryChannel{
		slots: make([]telemetrySlot, size),
		mask:  uint64(size - 1),
	}
}

func (t *TelemetryChannel) Cap() int { return len(t.slots) }

// Publish writes one record, overwriting the oldest slot when the ring has
// wrapped. Producer side only; never blocks, never allocates.
func (t *TelemetryChannel) Publish(rec Telemetry) {
	pos := t.tail.Load()
	slot := &t.slots[pos&t.mask]
	slot.seq.Store(2*pos + 1)
	slot.data = rec
	slot.seq.Store(2*pos + 2)
	t.tail.Store(pos + 1)
}

// Latest returns the most recent record, or false if nothing has been
// published. Retries when the producer overwrites the slot mid-read.
func (t *TelemetryChannel) Latest() (Telemetry, bool) {
	for {
		pos := t.tail.Load()
		if pos == 0 {
			return Telemetry{}, false
		}
		slot := &t.slots[(pos-1)&t.mask]
		want := 2 * pos // 2*(pos-1)+2
		if slot.seq.Load() != want {
			continue
		}
		rec := slot.data
		if slot.seq.Load() == want {
			return rec, true
		}
	}
}

// SetDiagnostic records a fatal-path code in the preallocated slot.
func (t *TelemetryChannel) SetDiagnostic(code int32) {
	t.diag.Store(code)
}

// Diagnostic reads and clears the out-of-band slot, returning its message.
func (t *TelemetryChannel) Diagnostic() (string, bool) {
	code := t.diag.Swap(DIAG_NONE)
	if code == DIAG_NONE {
		return "", false
	}
	return diagnosticMessages[code], true
}
