// main.go - WaveCraft demo host: wiring, flags and the run loop

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
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

func boilerPlate() {
	fmt.Println("WaveCraft - real-time audio rendering core")
	fmt.Println("(c) 2025 - 2026 T-Dawg2147 - GPLv3 or later")
	fmt.Println()
}

// buildDemoProject fills the engine with a small arpeggio so running with no
// arguments makes sound.
func buildDemoProject(e *Engine) {
	cfg := e.Config()

	bank := NewSynthVoiceBank(cfg.MaxVoicesPerSynth, cfg.SampleRate)
	bank.SetWaveform(WAVE_SAW)
	bank.SetADSR(0.01, 0.1, 0.7, 0.2)
	bank.SetMasterVolume(0.3)

	track := NewMidiTrack(0, "demo lead", bank, cfg.BufferFrames, cfg.Channels, cfg.SampleRate)
	clip := NewMidiClip(0, "arpeggio", 0)

	arpeggio := []int{60, 64, 67, 72, 67, 64}
	for i, key := range arpeggio {
		clip.AddNote(MidiNote{
			ID:            i,
			NoteNumber:    key,
			Velocity:      100,
			StartTick:     i * PPQ / 2,
			DurationTicks: PPQ / 2,
		})
	}
	track.AddClip(clip)

	echo := NewEffect(EFFECT_DELAY)
	_ = echo.SetParamByName("delayMs", 250)
	_ = echo.SetParamByName("feedback", 0.3)
	_ = echo.SetParamByName("mix", 0.25)
	_ = track.Chain().Add(echo)

	e.Mixer().AddMidiTrack(track)

	room := NewEffect(EFFECT_REVERB)
	_ = room.SetParamByName("mix", 0.15)
	_ = e.Mixer().MasterChain().Add(room)
}

func main() {
	boilerPlate()

	var (
		settingsPath string
		projectPath  string
		backend      string
		watch        bool
		gui          bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&settingsPath, "settings", "", "Path to JSON engine settings")
	flagSet.StringVar(&projectPath, "project", "", "Path to Lua project script")
	flagSet.StringVar(&backend, "backend", "", "Audio backend: oto|portaudio|none")
	flagSet.BoolVar(&watch, "watch", false, "Reload the project script on change")
	flagSet.BoolVar(&gui, "gui", false, "Show the meter window (requires -tags gui)")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./wavecraft [-settings conf.json] [-project song.lua] [-backend oto] [-watch] [-gui] [file.wav ...]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := LoadEngineConfig(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings error: %v\n", err)
		os.Exit(1)
	}
	if backend != "" {
		cfg.Backend = backend
	}

	engine, err := NewEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine error: %v\n", err)
		os.Exit(1)
	}
	defer engine.Dispose()

	// One audio track per WAV argument, a scripted project, or the demo.
	wavPaths := flagSet.Args()
	switch {
	case projectPath != "":
		if err := BuildProjectFromScript(projectPath, engine); err != nil {
			fmt.Fprintf(os.Stderr, "project error: %v\n", err)
			os.Exit(1)
		}
	case len(wavPaths) > 0:
		for i, path := range wavPaths {
			source, err := LoadWAV(path, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "wav error: %v\n", err)
				os.Exit(1)
			}
			track := NewAudioTrack(i, path, cfg.BufferFrames, cfg.Channels, cfg.SampleRate)
			track.AddClip(NewAudioClip(i, source, 0))
			engine.Mixer().AddAudioTrack(track)
		}
	default:
		buildDemoProject(engine)
	}

	if err := engine.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "start error: %v\n", err)
		os.Exit(1)
	}
	_ = engine.Play()

	done := make(chan struct{})
	defer close(done)

	if watch && projectPath != "" {
		reloads := make(chan string)
		watchErrs := make(chan error)
		if err := WatchProject(projectPath, reloads, watchErrs, done); err != nil {
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			os.Exit(1)
		}
		go func() {
			for {
				select {
				case path := <-reloads:
					_ = engine.Stop()
					// Stop is a command; wait for the worker to apply it.
					for i := 0; i < 50 && engine.Transport().State() != TRANSPORT_STOPPED; i++ {
						time.Sleep(10 * time.Millisecond)
					}
					if err := ReloadProject(path, engine); err != nil {
						fmt.Fprintf(os.Stderr, "\nreload error: %v\n", err)
						continue
					}
					fmt.Println("\nproject reloaded")
					_ = engine.Play()
				case err := <-watchErrs:
					fmt.Fprintf(os.Stderr, "\nwatch error: %v\n", err)
				case <-done:
					return
				}
			}
		}()
	}

	if gui {
		if err := RunMeterView(engine); err != nil {
			fmt.Fprintf(os.Stderr, "gui error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	control := NewTerminalControl(engine)
	control.Start()
	defer control.Stop()
	<-control.Quit
}
