//go:build gui

// meter_view.go - Ebiten level-meter and transport window

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
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	METER_VIEW_W = 480
	METER_VIEW_H = 200
	METER_BAR_W  = 400
	METER_BAR_H  = 24
)

// MeterView is an ebiten front-end over the telemetry channel: peak/RMS
// bars, the frame cursor, and space/s transport keys.
type MeterView struct {
	engine *Engine
	last   Telemetry
}

func NewMeterView(e *Engine) *MeterView {
	return &MeterView{engine: e}
}

func (v *MeterView) Update() error {
	if rec, ok := v.engine.LatestTelemetry(); ok {
		v.last = rec
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if v.engine.Transport().State() == TRANSPORT_PLAYING {
			_ = v.engine.Pause()
		} else {
			_ = v.engine.Play()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		_ = v.engine.Stop()
	}
	return nil
}

func meterColor(level float32) color.RGBA {
	switch {
	case level >= 0.99:
		return color.RGBA{0xe0, 0x40, 0x40, 0xff}
	case level >= 0.7:
		return color.RGBA{0xe0, 0xc0, 0x40, 0xff}
	default:
		return color.RGBA{0x40, 0xc0, 0x60, 0xff}
	}
}

func drawMeter(screen *ebiten.Image, x, y int, peak, rms float32, label string) {
	face := basicfont.Face7x13
	text.Draw(screen, label, face, x, y+16, color.White)

	bx := float64(x + 24)
	by := float64(y)
	ebitenutil.DrawRect(screen, bx, by, METER_BAR_W, METER_BAR_H, color.RGBA{0x20, 0x20, 0x20, 0xff})
	if rms > 0 {
		ebitenutil.DrawRect(screen, bx, by, float64(rms)*METER_BAR_W, METER_BAR_H,
			color.RGBA{0x30, 0x60, 0x40, 0xff})
	}
	if peak > 0 {
		w := float64(peak) * METER_BAR_W
		if w > METER_BAR_W {
			w = METER_BAR_W
		}
		ebitenutil.DrawRect(screen, bx, by+6, w, METER_BAR_H-12, meterColor(peak))
	}
}

func (v *MeterView) Draw(screen *ebiten.Image) {
	face := basicfont.Face7x13

	drawMeter(screen, 20, 40, v.last.LeftPeak, v.last.LeftRMS, "L")
	drawMeter(screen, 20, 80, v.last.RightPeak, v.last.RightRMS, "R")

	seconds := float64(v.last.FrameCursor) / float64(v.engine.Config().SampleRate)
	status := fmt.Sprintf("%s  %.2fs  frame %d",
		v.engine.Transport().State(), seconds, v.last.FrameCursor)
	text.Draw(screen, status, face, 20, 140, color.White)
	text.Draw(screen, "space: play/pause   s: stop", face, 20, 170,
		color.RGBA{0x90, 0x90, 0x90, 0xff})
}

func (v *MeterView) Layout(_, _ int) (int, int) {
	return METER_VIEW_W, METER_VIEW_H
}

// RunMeterView opens the window and blocks until it is closed.
func RunMeterView(e *Engine) error {
	ebiten.SetWindowSize(METER_VIEW_W*2, METER_VIEW_H*2)
	ebiten.SetWindowTitle("WaveCraft")
	return ebiten.RunGame(NewMeterView(e))
}
