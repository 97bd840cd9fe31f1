// command_channel.go - Lock-free SPSC command queue, control side to render side

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

type CommandType int32

const (
	CMD_PLAY CommandType = iota
	CMD_PAUSE
	CMD_STOP
	CMD_SEEK
	CMD_SET_PARAM
	CMD_MIDI_ON
	CMD_MIDI_OFF
)

// TargetRef addresses a parameter holder: Track < 0 selects the master
// chain; Effect < 0 on a MIDI track selects its voice bank.
type TargetRef struct {
	Track  int
	Effect int
	Param  int
}

// Command is a value-like record owned by the queue slot it sits in.
type Command struct {
	Type     CommandType
	Frame    int
	Target   TargetRef
	Value    float32
	Note     int
	Velocity int
}

// CommandChannel is a single-producer single-consumer ring with atomic
// head/tail indices. Enqueue fails fast on overflow; neither side ever
// blocks. Capacity is rounded up to a power of two.
type CommandChannel struct {
	buf  []Command
	mask uint64
	head atomic.Uint64 // consumer cursor
	tail atomic.Uint64 // producer cursor
}

func NewCommandChannel(capacity int) *CommandChannel {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &CommandChannel{
		buf:  make([]Command, size),
		mask: uint64(size - 1),
	}
}

func (c *CommandChannel) Cap() int { return len(c.buf) }

// Enqueue appends a command or returns ErrQueueFull. Producer side only.
func (c *CommandChannel) Enqueue(cmd Command) error {
	tail := c.tail.Load()
	head := c.head.Load()
	if tail-head >= uint64(len(c.buf)) {
		return ErrQueueFull
	}
	c.buf[tail&c.mask] = cmd
	c.tail.Store(tail + 1)
	return nil
}

// Dequeue pops the oldest command. Consumer side only.
func (c *CommandChannel) Dequeue() (Command, bool) {
	head := c.head.Load()
	if head == c.tail.Load() {
		return Command{}, false
	}
	cmd := c.buf[head&c.mask]
	c.head.Store(head + 1)
	return cmd, true
}

func (c *CommandChannel) Len() int {
	return int(c.tail.Load() - c.head.Load())
}
