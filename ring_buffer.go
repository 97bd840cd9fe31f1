// ring_buffer.go - Fixed-size circular sample store for delay lines

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

// RingBuffer is a fixed-length float store with a single write cursor.
// Allocated once, reused for the lifetime of its owning effect.
type RingBuffer struct {
	data []float32
	pos  int
}

func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{data: make([]float32, size)}
}

func (r *RingBuffer) Size() int { return len(r.data) }

// Write stores a sample and advances the cursor, wrapping at size.
func (r *RingBuffer) Write(s float32) {
	r.data[r.pos] = s
	r.pos++
	if r.pos == len(r.data) {
		r.pos = 0
	}
}

// ReadAt returns the sample written offset writes ago; ReadAt(0) is the most
// recent write. offset must be < size.
func (r *RingBuffer) ReadAt(offset int) float32 {
	idx := r.pos - 1 - offset
	if idx < 0 {
		idx += len(r.data)
	}
	return r.data[idx]
}

// Reset zeroes the stored samples without freeing memory.
func (r *RingBuffer) Reset() {
	for i := range r.data {
		r.data[i] = 0
	}
	r.pos = 0
}
