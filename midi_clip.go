// midi_clip.go - Immutable note records and tick-windowed clips

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

import "sort"

// WHOLE_NOTE_TICKS is the effective length of an empty clip.
const WHOLE_NOTE_TICKS = 4 * PPQ

// MidiNote is an immutable note record; edits produce a replacement value.
type MidiNote struct {
	ID            int
	NoteNumber    int // 0..127
	Velocity      int // 1..127
	StartTick     int
	DurationTicks int // >= 1
	Channel       int // 0..15
}

func (n MidiNote) EndTick() int { return n.StartTick + n.DurationTicks }

// MidiClip holds notes ordered by (StartTick, NoteNumber). StartTick places
// the clip on the project timeline; note ticks are clip-local.
type MidiClip struct {
	ID          int
	Name        string
	StartTick   int
	lengthTicks int // 0 means derive from content
	notes       []MidiNote
}

func NewMidiClip(id int, name string, startTick int) *MidiClip {
	return &MidiClip{ID: id, Name: name, StartTick: startTick}
}

// SetLengthTicks pins the clip length; 0 reverts to content-derived length.
func (c *MidiClip) SetLengthTicks(ticks int) { c.lengthTicks = ticks }

// LengthTicks is the pinned length if set, else the largest note end, else
// one whole note for an empty clip.
func (c *MidiClip) LengthTicks() int {
	if c.lengthTicks > 0 {
		return c.lengthTicks
	}
	if len(c.notes) == 0 {
		return WHOLE_NOTE_TICKS
	}
	maxEnd := 0
	for _, n := range c.notes {
		if n.EndTick() > maxEnd {
			maxEnd = n.EndTick()
		}
	}
	return maxEnd
}

// AddNote inserts a note, keeping (StartTick, NoteNumber) order. Existing
// same-pitch notes whose span the new note fully covers are removed, which
// also enforces the no-duplicate-(pitch, start) invariant. Partial overlaps
// on the same pitch are accepted unchanged.
func (c *MidiClip) AddNote(n MidiNote) {
	kept := c.notes[:0]
	for _, m := range c.notes {
		covered := m.NoteNumber == n.NoteNumber &&
			m.StartTick >= n.StartTick && m.EndTick() <= n.EndTick()
		if !covered {
			kept = append(kept, m)
		}
	}
	c.notes = append(kept, n)
	sort.SliceStable(c.notes, func(i, j int) bool {
		if c.notes[i].StartTick != c.notes[j].StartTick {
			return c.notes[i].StartTick < c.notes[j].StartTick
		}
		return c.notes[i].NoteNumber < c.notes[j].NoteNumber
	})
}

// RemoveNote deletes by note id. Returns whether a note was removed.
func (c *MidiClip) RemoveNote(id int) bool {
	for i, n := range c.notes {
		if n.ID == id {
			c.notes = append(c.notes[:i], c.notes[i+1:]...)
			return true
		}
	}
	return false
}

func (c *MidiClip) Notes() []MidiNote { return c.notes }

// EachNoteOn visits notes starting inside the clip-local half-open tick
// window [fromTick, toTick), in (StartTick, NoteNumber) order. Allocation
// free; used by the render worker.
func (c *MidiClip) EachNoteOn(fromTick, toTick int, fn func(MidiNote)) {
	for _, n := range c.notes {
		if n.StartTick >= toTick {
			break
		}
		if n.StartTick >= fromTick {
			fn(n)
		}
	}
}

// EachNoteOff visits notes ending inside [fromTick, toTick). Note ends are
// not ordered, so this scans the whole clip.
func (c *MidiClip) EachNoteOff(fromTick, toTick int, fn func(MidiNote)) {
	for _, n := range c.notes {
		end := n.EndTick()
		if end >= fromTick && end < toTick {
			fn(n)
		}
	}
}

// NoteOnEvents is the allocating control-side form of EachNoteOn.
func (c *MidiClip) NoteOnEvents(fromTick, toTick int) []MidiNote {
	var out []MidiNote
	c.EachNoteOn(fromTick, toTick, func(n MidiNote) { out = append(out, n) })
	return out
}

// NoteOffEvents is the allocating control-side form of EachNoteOff.
func (c *MidiClip) NoteOffEvents(fromTick, toTick int) []MidiNote {
	var out []MidiNote
	c.EachNoteOff(fromTick, toTick, func(n MidiNote) { out = append(out, n) })
	return out
}
