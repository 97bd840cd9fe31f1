// ring_buffer_test.go - Delay line ring tests

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

import "testing"

func TestRingBufferReadBack(t *testing.T) {
	r := NewRingBuffer(8)
	r.Write(0.5)
	if got := r.ReadAt(0); got != 0.5 {
		t.Fatalf("ReadAt(0) after Write(0.5) = %v", got)
	}

	r.Write(0.25)
	if got := r.ReadAt(0); got != 0.25 {
		t.Fatalf("ReadAt(0) = %v, want most recent write", got)
	}
	if got := r.ReadAt(1); got != 0.5 {
		t.Fatalf("ReadAt(1) = %v, want previous write", got)
	}
}

func TestRingBufferWrap(t *testing.T) {
	r := NewRingBuffer(4)
	for i := 0; i < 10; i++ {
		r.Write(float32(i))
	}
	// Last four writes were 6,7,8,9.
	for offset := 0; offset < 4; offset++ {
		want := float32(9 - offset)
		if got := r.ReadAt(offset); got != want {
			t.Fatalf("ReadAt(%d) = %v, want %v", offset, got, want)
		}
	}
}

func TestRingBufferReset(t *testing.T) {
	r := NewRingBuffer(4)
	r.Write(1)
	r.Write(2)
	r.Reset()
	for offset := 0; offset < 4; offset++ {
		if got := r.ReadAt(offset); got != 0 {
			t.Fatalf("ReadAt(%d) after reset = %v", offset, got)
		}
	}
}
