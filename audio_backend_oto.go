//go:build !headless

// audio_backend_oto.go - OTO v3 audio sink

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
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

func init() {
	sinkFactories["oto"] = func(cfg EngineConfig, ring *OutputRing) (AudioOutput, error) {
		return NewOtoSink(cfg, ring)
	}
}

// OtoSink pulls rendered samples from the engine's output ring through
// oto's player callback. The ring read path takes no locks.
type OtoSink struct {
	ctx       *oto.Context
	player    *oto.Player
	ring      *OutputRing
	sampleBuf []float32
	started   bool
	mutex     sync.Mutex // setup/control operations only
}

func NewOtoSink(cfg EngineConfig, ring *OutputRing) (*OtoSink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	s := &OtoSink{
		ctx:  ctx,
		ring: ring,
		// Pre-allocate for typical oto request sizes (4096 bytes = 1024 samples).
		sampleBuf: make([]float32, 4096),
	}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

func (s *OtoSink) Read(p []byte) (n int, err error) {
	numSamples := len(p) / 4
	// Should not grow after construction; kept for oversized requests.
	if len(s.sampleBuf) < numSamples {
		s.sampleBuf = make([]float32, numSamples)
	}
	samples := s.sampleBuf[:numSamples]

	s.ring.ReadInto(samples)

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(p)])
	return len(p), nil
}

func (s *OtoSink) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.started && s.player != nil {
		s.player.Play()
		s.started = true
	}
	return nil
}

func (s *OtoSink) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.started && s.player != nil {
		s.player.Pause()
		s.started = false
	}
}

func (s *OtoSink) Close() {
	s.Stop()
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}

func (s *OtoSink) IsStarted() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.started
}
