// audio_output.go - Sink interface, backend registry and the output sample ring

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
	"sync/atomic"
	"time"
)

// OUTPUT_RING_BLOCKS sizes the sample ring between the render worker and
// the sink; its fill level is the sink's back-pressure primitive.
const OUTPUT_RING_BLOCKS = 4

// OutputRing is a single-producer single-consumer float32 ring. The render
// worker writes whole blocks; the sink callback drains whatever it needs and
// zero-fills on underrun.
type OutputRing struct {
	buf  []float32
	mask uint64
	head atomic.Uint64 // consumer cursor
	tail atomic.Uint64 // producer cursor
}

func NewOutputRing(blockSamples int) *OutputRing {
	size := 1
	for size < blockSamples*OUTPUT_RING_BLOCKS {
		size <<= 1
	}
	return &OutputRing{
		buf:  make([]float32, size),
		mask: uint64(size - 1),
	}
}

// WriteBlock copies samples into the ring, waiting in short bounded sleeps
// while the sink catches up. Returns false if stop is signalled first.
func (r *OutputRing) WriteBlock(samples []float32, stop <-chan struct{}) bool {
	for {
		head := r.head.Load()
		tail := r.tail.Load()
		if int(uint64(len(r.buf))-(tail-head)) >= len(samples) {
			for _, s := range samples {
				r.buf[tail&r.mask] = s
				tail++
			}
			r.tail.Store(tail)
			return true
		}
		select {
		case <-stop:
			return false
		default:
			time.Sleep(200 * time.Microsecond)
		}
	}
}

// ReadInto fills p from the ring, zero-filling past what is available, and
// returns the number of real samples copied. Consumer side only.
func (r *OutputRing) ReadInto(p []float32) int {
	head := r.head.Load()
	tail := r.tail.Load()
	avail := int(tail - head)
	n := len(p)
	if avail < n {
		n = avail
	}
	for i := 0; i < n; i++ {
		p[i] = r.buf[head&r.mask]
		head++
	}
	r.head.Store(head)
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return n
}

// AudioOutput is the host-facing sink contract. Sample rate, channel count
// and block size are fixed at engine construction.
type AudioOutput interface {
	Start() error
	Stop()
	Close()
}

// sinkFactories maps backend names to constructors. Build-tagged backend
// files register themselves; "none" leaves the engine self-paced for tests
// and offline use.
var sinkFactories = map[string]func(cfg EngineConfig, ring *OutputRing) (AudioOutput, error){
	"none": func(EngineConfig, *OutputRing) (AudioOutput, error) { return nil, nil },
}

// NewAudioOutput builds the named backend over the engine's output ring.
func NewAudioOutput(backend string, cfg EngineConfig, ring *OutputRing) (AudioOutput, error) {
	factory, ok := sinkFactories[backend]
	if !ok {
		return nil, fmt.Errorf("audio output: unknown backend %q", backend)
	}
	return factory(cfg, ring)
}
