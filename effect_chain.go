// effect_chain.go - Ordered effect sequence with lock-free processing path

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
	"errors"
	"sync"
)

// MAX_CHAIN_EFFECTS bounds a chain so the Process snapshot array never
// allocates. Add and InsertAt refuse to grow past it; every effect they
// accept is guaranteed to be processed and reset.
const MAX_CHAIN_EFFECTS = 16

// ErrChainFull is returned when a chain already holds MAX_CHAIN_EFFECTS.
var ErrChainFull = errors.New("effect chain full")

// EffectChain serialises structural changes (add/remove/insert/move) under a
// mutex; Process copies the current sequence into a fixed-size snapshot under
// that lock and then iterates the snapshot with the lock released, so no lock
// is held for the duration of DSP.
type EffectChain struct {
	mu      sync.Mutex
	effects []*Effect
}

func NewEffectChain() *EffectChain {
	return &EffectChain{effects: make([]*Effect, 0, MAX_CHAIN_EFFECTS)}
}

func (c *EffectChain) Add(e *Effect) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.effects) >= MAX_CHAIN_EFFECTS {
		return ErrChainFull
	}
	c.effects = append(c.effects, e)
	return nil
}

func (c *EffectChain) InsertAt(index int, e *Effect) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.effects) >= MAX_CHAIN_EFFECTS {
		return ErrChainFull
	}
	if index < 0 {
		index = 0
	}
	if index > len(c.effects) {
		index = len(c.effects)
	}
	c.effects = append(c.effects, nil)
	copy(c.effects[index+1:], c.effects[index:])
	c.effects[index] = e
	return nil
}

func (c *EffectChain) RemoveAt(index int) {
	c.mu.Lock()
	if index >= 0 && index < len(c.effects) {
		c.effects = append(c.effects[:index], c.effects[index+1:]...)
	}
	c.mu.Unlock()
}

func (c *EffectChain) Move(from, to int) {
	c.mu.Lock()
	if from >= 0 && from < len(c.effects) && to >= 0 && to < len(c.effects) && from != to {
		e := c.effects[from]
		c.effects = append(c.effects[:from], c.effects[from+1:]...)
		c.effects = append(c.effects, nil)
		copy(c.effects[to+1:], c.effects[to:])
		c.effects[to] = e
	}
	c.mu.Unlock()
}

func (c *EffectChain) At(index int) *Effect {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.effects) {
		return nil
	}
	return c.effects[index]
}

func (c *EffectChain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.effects)
}

// Process runs every enabled effect in order over buf.
func (c *EffectChain) Process(buf *AudioBuffer, sampleRate int) {
	var snapshot [MAX_CHAIN_EFFECTS]*Effect
	c.mu.Lock()
	n := copy(snapshot[:], c.effects)
	c.mu.Unlock()

	for i := 0; i < n; i++ {
		if snapshot[i].enabled {
			snapshot[i].Process(buf, sampleRate)
		}
	}
}

// Reset zeroes the persistent state of every effect in the chain.
func (c *EffectChain) Reset() {
	var snapshot [MAX_CHAIN_EFFECTS]*Effect
	c.mu.Lock()
	n := copy(snapshot[:], c.effects)
	c.mu.Unlock()

	for i := 0; i < n; i++ {
		snapshot[i].Reset()
	}
}
