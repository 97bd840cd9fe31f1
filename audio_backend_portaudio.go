//go:build portaudio

// audio_backend_portaudio.go - PortAudio callback sink

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

	"github.com/gordonklaus/portaudio"
)

func init() {
	sinkFactories["portaudio"] = func(cfg EngineConfig, ring *OutputRing) (AudioOutput, error) {
		return NewPortAudioSink(cfg, ring)
	}
}

// PortAudioSink drains the engine's output ring from portaudio's callback.
type PortAudioSink struct {
	stream  *portaudio.Stream
	ring    *OutputRing
	started bool
	mutex   sync.Mutex
}

func NewPortAudioSink(cfg EngineConfig, ring *OutputRing) (*PortAudioSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	s := &PortAudioSink{ring: ring}
	stream, err := portaudio.OpenDefaultStream(0, cfg.Channels, float64(cfg.SampleRate),
		cfg.BufferFrames, s.callback)
	if err != nil {
		// ignore Terminate error
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (s *PortAudioSink) callback(out []float32) {
	s.ring.ReadInto(out)
}

func (s *PortAudioSink) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.started || s.stream == nil {
		return nil
	}
	if err := s.stream.Start(); err != nil {
		return err
	}
	s.started = true
	return nil
}

func (s *PortAudioSink) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.started && s.stream != nil {
		// ignore Stop error
		s.stream.Stop()
		s.started = false
	}
}

func (s *PortAudioSink) Close() {
	s.Stop()
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.stream != nil {
		s.stream.Close()
		s.stream = nil
		portaudio.Terminate()
	}
}
