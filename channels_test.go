// channels_test.go - SPSC command and telemetry queue tests

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
	"sync"
	"testing"
)

func TestCommandChannelFIFO(t *testing.T) {
	q := NewCommandChannel(256)

	for i := 0; i < 10; i++ {
		if err := q.Enqueue(Command{Type: CMD_SEEK, Frame: i}); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 10; i++ {
		cmd, ok := q.Dequeue()
		if !ok {
			t.Fatalf("queue ran dry at %d", i)
		}
		if cmd.Frame != i {
			t.Fatalf("out of order: got %d, want %d", cmd.Frame, i)
		}
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatal("empty queue returned a command")
	}
}

func TestCommandChannelFailsFastWhenFull(t *testing.T) {
	q := NewCommandChannel(256)

	for i := 0; i < q.Cap(); i++ {
		if err := q.Enqueue(Command{Type: CMD_PLAY}); err != nil {
			t.Fatalf("enqueue %d of %d failed early: %v", i, q.Cap(), err)
		}
	}
	if err := q.Enqueue(Command{Type: CMD_PLAY}); err != ErrQueueFull {
		t.Fatalf("overflow must return ErrQueueFull, got %v", err)
	}

	// Draining one slot makes room again.
	q.Dequeue()
	if err := q.Enqueue(Command{Type: CMD_PLAY}); err != nil {
		t.Fatalf("enqueue after drain failed: %v", err)
	}
}

func TestCommandChannelCapacityRounding(t *testing.T) {
	q := NewCommandChannel(1000)
	if q.Cap() != 1024 {
		t.Fatalf("capacity must round up to a power of two: %d", q.Cap())
	}
}

func TestCommandChannelCrossThread(t *testing.T) {
	t.Log("producer and consumer on separate goroutines, every command observed once")

	q := NewCommandChannel(4096)
	const n = 4000

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; {
			if err := q.Enqueue(Command{Type: CMD_SEEK, Frame: i}); err == nil {
				i++
			}
		}
	}()

	seen := make([]bool, n)
	go func() {
		defer wg.Done()
		for count := 0; count < n; {
			if cmd, ok := q.Dequeue(); ok {
				if seen[cmd.Frame] {
					t.Errorf("frame %d delivered twice", cmd.Frame)
					return
				}
				seen[cmd.Frame] = true
				count++
			}
		}
	}()

	wg.Wait()
	for i, s := range seen {
		if !s {
			t.Fatalf("command %d lost", i)
		}
	}
}

func TestTelemetryLatestWins(t *testing.T) {
	q := NewTelemetryChannel(8)

	if _, ok := q.Latest(); ok {
		t.Fatal("empty channel reported a record")
	}

	// Publish far past the capacity: the producer must never block and the
	// consumer must see the newest record.
	for i := 0; i < 100; i++ {
		q.Publish(Telemetry{FrameCursor: int64(i)})
	}

	rec, ok := q.Latest()
	if !ok {
		t.Fatal("no record after publishing")
	}
	if rec.FrameCursor != 99 {
		t.Fatalf("latest cursor = %d, want 99", rec.FrameCursor)
	}
}

func TestTelemetryConcurrentReads(t *testing.T) {
	q := NewTelemetryChannel(8)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 100000; i++ {
			q.Publish(Telemetry{FrameCursor: int64(i), LeftPeak: float32(i)})
		}
	}()

	for {
		select {
		case <-done:
			rec, ok := q.Latest()
			if !ok || rec.FrameCursor != 99999 {
				t.Fatalf("final record %+v ok=%v", rec, ok)
			}
			return
		default:
			if rec, ok := q.Latest(); ok {
				// A torn record would show mismatched fields.
				if float32(rec.FrameCursor) != rec.LeftPeak {
					t.Fatalf("torn read: cursor %d peak %v", rec.FrameCursor, rec.LeftPeak)
				}
			}
		}
	}
}

func TestTelemetryDiagnosticSlot(t *testing.T) {
	q := NewTelemetryChannel(8)

	if _, fatal := q.Diagnostic(); fatal {
		t.Fatal("fresh channel reported a diagnostic")
	}

	q.SetDiagnostic(DIAG_NIL_MASTER_BUFFER)
	msg, fatal := q.Diagnostic()
	if !fatal || msg == "" {
		t.Fatalf("diagnostic not delivered: %q %v", msg, fatal)
	}
	if _, fatal := q.Diagnostic(); fatal {
		t.Fatal("diagnostic must clear after one read")
	}
}
