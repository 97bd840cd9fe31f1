// file_io.go - WAV decoding into engine-ready sample buffers

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
	"io"
	"os"

	wav "github.com/youpy/go-wav"
)

// LoadWAV decodes a WAV file into an interleaved buffer with the engine's
// channel count. The file's sample rate must match the engine's; the core
// performs no resampling, per its source-buffer contract.
func LoadWAV(path string, cfg EngineConfig) (*AudioBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := wav.NewReader(f)
	format, err := r.Format()
	if err != nil {
		return nil, fmt.Errorf("%s: can't read format: %w", path, err)
	}
	if int(format.SampleRate) != cfg.SampleRate {
		return nil, fmt.Errorf("%s: sample rate %d does not match engine rate %d",
			path, format.SampleRate, cfg.SampleRate)
	}
	srcChannels := int(format.NumChannels)

	var data []float32
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: can't read samples: %w", path, err)
		}
		for _, sample := range samples {
			switch {
			case cfg.Channels == 1 && srcChannels >= 2:
				l := r.FloatValue(sample, 0)
				rv := r.FloatValue(sample, 1)
				data = append(data, float32((l+rv)/2))
			case cfg.Channels == 2 && srcChannels == 1:
				v := float32(r.FloatValue(sample, 0))
				data = append(data, v, v)
			default:
				for c := 0; c < cfg.Channels; c++ {
					data = append(data, float32(r.FloatValue(sample, uint(c))))
				}
			}
		}
	}

	return NewAudioBufferFromData(data, cfg.Channels), nil
}

// LoadWAVMono decodes a WAV file to mono sample data for sampler zones,
// returning the data and the file's own rate; the sampler compensates for
// rate differences through its playback ratio.
func LoadWAVMono(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := wav.NewReader(f)
	format, err := r.Format()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: can't read format: %w", path, err)
	}
	srcChannels := int(format.NumChannels)

	var data []float32
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s: can't read samples: %w", path, err)
		}
		for _, sample := range samples {
			if srcChannels >= 2 {
				l := r.FloatValue(sample, 0)
				rv := r.FloatValue(sample, 1)
				data = append(data, float32((l+rv)/2))
			} else {
				data = append(data, float32(r.FloatValue(sample, 0)))
			}
		}
	}

	return data, int(format.SampleRate), nil
}
