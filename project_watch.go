// project_watch.go - fsnotify hot-reload for project scripts

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

	"github.com/fsnotify/fsnotify"
)

// WatchProject re-runs the project script when the file changes. Reload is
// only legal while the transport is stopped; changed paths are reported on
// the reloads channel so the host can rebuild and restart.
func WatchProject(path string, reloads chan<- string, errs chan<- error, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("can't create watcher: %w", err)
	}
	go func() {
	loop:
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					break loop
				}
				// Editors rename or rewrite on save; both mean reload.
				if event.Op&(fsnotify.Write|fsnotify.Rename) > 0 {
					select {
					case reloads <- path:
					case <-done:
						break loop
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					break loop
				}
				select {
				case errs <- err:
				case <-done:
					break loop
				}
			case <-done:
				break loop
			}
		}
		// ignore close error
		watcher.Close()
	}()
	if err := watcher.Add(path); err != nil {
		return err
	}
	return nil
}

// ReloadProject tears the current track graph down and rebuilds it from the
// script. Refused unless the transport is stopped.
func ReloadProject(path string, e *Engine) error {
	if e.Transport().State() != TRANSPORT_STOPPED {
		return ErrNotStopped
	}
	mixer := e.Mixer()
	for _, t := range mixer.AudioTracks() {
		mixer.RemoveAudioTrack(t.ID)
	}
	for _, t := range mixer.MidiTracks() {
		mixer.RemoveMidiTrack(t.ID)
	}
	return BuildProjectFromScript(path, e)
}
