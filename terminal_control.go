// terminal_control.go - Raw-mode terminal transport control surface

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
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

// SEEK_STEP_SECONDS is how far the arrow keys move the cursor.
const SEEK_STEP_SECONDS = 1.0

// TerminalControl reads transport keys from raw-mode stdin and prints the
// latest telemetry meters: space play/pause, s stop, arrows seek, q quit.
type TerminalControl struct {
	engine *Engine

	fd           int
	oldTermState *term.State
	nonblockSet  bool

	stopCh chan struct{}
	done   chan struct{}
	Quit   chan struct{} // closed when the user presses q
}

func NewTerminalControl(e *Engine) *TerminalControl {
	return &TerminalControl{
		engine: e,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		Quit:   make(chan struct{}),
	}
}

// Start sets stdin to raw non-blocking mode and begins the key loop.
// Call Stop() to restore the terminal.
func (c *TerminalControl) Start() {
	c.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(c.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal_control: failed to set raw mode: %v\n", err)
		close(c.done)
		return
	}
	c.oldTermState = oldState

	if err := syscall.SetNonblock(c.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "terminal_control: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(c.fd, c.oldTermState)
		c.oldTermState = nil
		close(c.done)
		return
	}
	c.nonblockSet = true

	go c.loop()
}

func (c *TerminalControl) loop() {
	defer close(c.done)

	buf := make([]byte, 8)
	meterTick := time.NewTicker(100 * time.Millisecond)
	defer meterTick.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-meterTick.C:
			c.printMeters()
		default:
		}

		n, err := syscall.Read(c.fd, buf)
		if err != nil || n == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		c.handleKeys(buf[:n])
	}
}

func (c *TerminalControl) handleKeys(keys []byte) {
	e := c.engine
	for i := 0; i < len(keys); i++ {
		switch keys[i] {
		case ' ':
			if e.Transport().State() == TRANSPORT_PLAYING {
				_ = e.Pause()
			} else {
				_ = e.Play()
			}
		case 's', 'S':
			_ = e.Stop()
		case 'q', 'Q', 3: // q or ctrl-c
			select {
			case <-c.Quit:
			default:
				close(c.Quit)
			}
			return
		case 0x1b: // ESC [ C / ESC [ D arrow sequences
			if i+2 < len(keys) && keys[i+1] == '[' {
				step := int(SEEK_STEP_SECONDS * float64(e.Config().SampleRate))
				cursor := int(e.Transport().Cursor())
				switch keys[i+2] {
				case 'C':
					_ = e.Seek(cursor + step)
				case 'D':
					if cursor < step {
						_ = e.Seek(0)
					} else {
						_ = e.Seek(cursor - step)
					}
				}
				i += 2
			}
		}
	}
}

func (c *TerminalControl) printMeters() {
	rec, ok := c.engine.LatestTelemetry()
	if !ok {
		return
	}
	seconds := float64(rec.FrameCursor) / float64(c.engine.Config().SampleRate)
	fmt.Printf("\r[%s] %8.2fs  peak %5.3f/%5.3f  rms %5.3f/%5.3f   ",
		c.engine.Transport().State(), seconds,
		rec.LeftPeak, rec.RightPeak, rec.LeftRMS, rec.RightRMS)
	if msg, fatal := c.engine.TelemetryChannel().Diagnostic(); fatal {
		fmt.Printf("\r\n%s\r\n", msg)
	}
}

// Stop restores the terminal and joins the key loop.
func (c *TerminalControl) Stop() {
	select {
	case <-c.stopCh:
	default:
		close(c.stopCh)
	}
	<-c.done

	if c.nonblockSet {
		_ = syscall.SetNonblock(c.fd, false)
		c.nonblockSet = false
	}
	if c.oldTermState != nil {
		_ = term.Restore(c.fd, c.oldTermState)
		c.oldTermState = nil
	}
	fmt.Println()
}
