//go:build headless

// audio_backend_headless.go - No-op audio sink for headless builds

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

func init() {
	// No sink in headless builds; the engine detaches the ring and
	// self-paces at the idle rate.
	sinkFactories["oto"] = func(cfg EngineConfig, ring *OutputRing) (AudioOutput, error) {
		return nil, nil
	}
}

// OtoSink remains as a stand-in for hosts that construct the backend
// directly; it plays nothing.
type OtoSink struct {
	started bool
}

func (s *OtoSink) Start() error {
	s.started = true
	return nil
}

func (s *OtoSink) Stop() {
	s.started = false
}

func (s *OtoSink) Close() {
	s.started = false
}

func (s *OtoSink) IsStarted() bool {
	return s.started
}
