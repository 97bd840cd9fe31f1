// engine_config.go - Construction parameters, validation and JSON settings

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
	"encoding/json"
	"fmt"
	"os"
)

const (
	DEFAULT_SAMPLE_RATE   = 44100
	DEFAULT_CHANNELS      = 2
	DEFAULT_BUFFER_FRAMES = 1024
	DEFAULT_TELEMETRY_CAP = 8
	DEFAULT_COMMAND_CAP   = 1024
	MIN_BUFFER_FRAMES     = 64
	MAX_BUFFER_FRAMES     = 8192
	MIN_MAX_VOICES        = 8
	MIN_TELEMETRY_CAP     = 4
	MIN_COMMAND_CAP       = 256
)

var supportedSampleRates = map[int]bool{44100: true, 48000: true, 96000: true, 192000: true}

// EngineConfig fixes every size at construction; all are immutable for the
// engine's lifetime.
type EngineConfig struct {
	SampleRate        int    `json:"sampleRate"`
	Channels          int    `json:"channels"`
	BufferFrames      int    `json:"bufferFrames"`
	MaxVoicesPerSynth int    `json:"maxVoicesPerSynth"`
	TelemetryCapacity int    `json:"telemetryCapacity"`
	CommandCapacity   int    `json:"commandCapacity"`
	Backend           string `json:"backend"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SampleRate:        DEFAULT_SAMPLE_RATE,
		Channels:          DEFAULT_CHANNELS,
		BufferFrames:      DEFAULT_BUFFER_FRAMES,
		MaxVoicesPerSynth: DEFAULT_MAX_VOICES,
		TelemetryCapacity: DEFAULT_TELEMETRY_CAP,
		CommandCapacity:   DEFAULT_COMMAND_CAP,
		Backend:           "oto",
	}
}

// Validate returns a ConfigError for the first invalid field. Zero values
// are filled from defaults first so a partial config is usable.
func (c *EngineConfig) Validate() error {
	def := DefaultEngineConfig()
	if c.SampleRate == 0 {
		c.SampleRate = def.SampleRate
	}
	if c.Channels == 0 {
		c.Channels = def.Channels
	}
	if c.BufferFrames == 0 {
		c.BufferFrames = def.BufferFrames
	}
	if c.MaxVoicesPerSynth == 0 {
		c.MaxVoicesPerSynth = def.MaxVoicesPerSynth
	}
	if c.TelemetryCapacity == 0 {
		c.TelemetryCapacity = def.TelemetryCapacity
	}
	if c.CommandCapacity == 0 {
		c.CommandCapacity = def.CommandCapacity
	}
	if c.Backend == "" {
		c.Backend = def.Backend
	}

	if !supportedSampleRates[c.SampleRate] {
		return &ConfigError{"sampleRate", fmt.Sprintf("unsupported rate %d", c.SampleRate)}
	}
	if c.Channels != 1 && c.Channels != 2 {
		return &ConfigError{"channels", fmt.Sprintf("must be 1 or 2, got %d", c.Channels)}
	}
	if c.BufferFrames < MIN_BUFFER_FRAMES || c.BufferFrames > MAX_BUFFER_FRAMES {
		return &ConfigError{"bufferFrames", fmt.Sprintf("must be in [%d, %d], got %d",
			MIN_BUFFER_FRAMES, MAX_BUFFER_FRAMES, c.BufferFrames)}
	}
	if c.BufferFrames&(c.BufferFrames-1) != 0 {
		return &ConfigError{"bufferFrames", fmt.Sprintf("must be a power of two, got %d", c.BufferFrames)}
	}
	if c.MaxVoicesPerSynth < MIN_MAX_VOICES {
		return &ConfigError{"maxVoicesPerSynth", fmt.Sprintf("must be >= %d, got %d",
			MIN_MAX_VOICES, c.MaxVoicesPerSynth)}
	}
	if c.TelemetryCapacity < MIN_TELEMETRY_CAP {
		return &ConfigError{"telemetryCapacity", fmt.Sprintf("must be >= %d, got %d",
			MIN_TELEMETRY_CAP, c.TelemetryCapacity)}
	}
	if c.CommandCapacity < MIN_COMMAND_CAP {
		return &ConfigError{"commandCapacity", fmt.Sprintf("must be >= %d, got %d",
			MIN_COMMAND_CAP, c.CommandCapacity)}
	}
	return nil
}

const defaultSettings = `
{
	"sampleRate": 44100,
	"channels": 2,
	"bufferFrames": 1024,
	"maxVoicesPerSynth": 32,
	"telemetryCapacity": 8,
	"commandCapacity": 1024,
	"backend": "oto"
}
`

// LoadEngineConfig reads settings from a JSON file, falling back to the
// embedded defaults when the path is empty or missing.
func LoadEngineConfig(path string) (EngineConfig, error) {
	var cfg EngineConfig

	raw := []byte(defaultSettings)
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			raw = b
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("can't read settings: %w", err)
		}
	}

	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("can't parse settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
