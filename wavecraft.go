// wavecraft.go - Shared constants, musical time conversion and error taxonomy

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
	"fmt"
	"math"
)

const (
	// Musical time resolution in ticks per quarter note.
	PPQ = 480

	DEFAULT_BPM = 120.0
)

const (
	MAX_SAMPLE = 1.0
	MIN_SAMPLE = -1.0

	// Gains this close to unity skip the multiply on the mix path.
	UNITY_GAIN_EPSILON = 1e-4
)

// ErrQueueFull is returned by CommandChannel.Enqueue when the ring is at
// capacity. The producer must never block; callers retry or drop.
var ErrQueueFull = errors.New("command queue full")

// ErrNotStopped is returned for data-model mutations that are only legal
// while the transport is stopped, such as replacing a clip's source buffer.
var ErrNotStopped = errors.New("transport must be stopped")

// ConfigError reports an invalid construction parameter. The engine is not
// created when one is returned.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// TicksToSeconds converts musical ticks to wall seconds at the given tempo.
func TicksToSeconds(ticks int, bpm float64) float64 {
	return float64(ticks) / PPQ * 60.0 / bpm
}

// SecondsToTicks converts wall seconds to musical ticks, rounded to nearest.
func SecondsToTicks(seconds float64, bpm float64) int {
	return int(math.Round(seconds * bpm / 60.0 * PPQ))
}

// TicksToFrames converts ticks to sample frames at the given tempo and rate,
// rounded to nearest. Fractional frames never leave the converter.
func TicksToFrames(ticks int, bpm float64, sampleRate int) int {
	return int(math.Round(TicksToSeconds(ticks, bpm) * float64(sampleRate)))
}

// FramesToTicks converts sample frames to ticks at the given tempo and rate.
func FramesToTicks(frames int, bpm float64, sampleRate int) int {
	return SecondsToTicks(float64(frames)/float64(sampleRate), bpm)
}

func dbToLinear(db float32) float32 {
	return float32(math.Pow(10, float64(db)/20.0))
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
