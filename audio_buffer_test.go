// audio_buffer_test.go - Buffer primitive and metering tests

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
	"math"
	"testing"
)

func TestAudioBufferClearAndCopy(t *testing.T) {
	a := NewAudioBuffer(4, 2)
	b := NewAudioBuffer(4, 2)
	for i := range a.Data() {
		a.Data()[i] = float32(i) * 0.1
	}

	b.CopyFrom(a)
	for i := range b.Data() {
		if b.Data()[i] != a.Data()[i] {
			t.Fatalf("sample %d: copy mismatch %v != %v", i, b.Data()[i], a.Data()[i])
		}
	}

	a.Clear()
	for i, s := range a.Data() {
		if s != 0 {
			t.Fatalf("sample %d not cleared: %v", i, s)
		}
	}
}

func TestAudioBufferCopyFromShorterSource(t *testing.T) {
	a := NewAudioBuffer(4, 1)
	b := NewAudioBuffer(2, 1)
	b.Data()[0] = 0.5
	b.Data()[1] = -0.5
	a.Data()[3] = 0.9

	a.CopyFrom(b)
	if a.Data()[0] != 0.5 || a.Data()[1] != -0.5 {
		t.Fatalf("short copy failed: %v", a.Data())
	}
	if a.Data()[3] != 0.9 {
		t.Fatalf("copy past source length must leave samples alone, got %v", a.Data()[3])
	}
}

func TestMixFromCommutativity(t *testing.T) {
	t.Log("adding X then Y must equal adding Y then X pointwise")

	x := NewAudioBuffer(64, 2)
	y := NewAudioBuffer(64, 2)
	for i := range x.Data() {
		x.Data()[i] = float32(math.Sin(float64(i) * 0.1))
		y.Data()[i] = float32(math.Cos(float64(i) * 0.07))
	}

	xy := NewAudioBuffer(64, 2)
	xy.MixFrom(x, 0.8)
	xy.MixFrom(y, 0.6)

	yx := NewAudioBuffer(64, 2)
	yx.MixFrom(y, 0.6)
	yx.MixFrom(x, 0.8)

	for i := range xy.Data() {
		if xy.Data()[i] != yx.Data()[i] {
			t.Fatalf("sample %d: order changed the sum: %v != %v", i, xy.Data()[i], yx.Data()[i])
		}
	}
}

func TestMixFromUnityGainSkip(t *testing.T) {
	src := NewAudioBuffer(8, 1)
	for i := range src.Data() {
		src.Data()[i] = 0.25
	}

	dst := NewAudioBuffer(8, 1)
	dst.MixFrom(src, 1.00001) // within the unity epsilon
	for i, s := range dst.Data() {
		if s != 0.25 {
			t.Fatalf("sample %d: unity mix must add samples unchanged, got %v", i, s)
		}
	}
}

func TestClampIdempotence(t *testing.T) {
	b := NewAudioBuffer(4, 1)
	b.Data()[0] = 1.7
	b.Data()[1] = -2.3
	b.Data()[2] = 0.4
	b.Data()[3] = float32(math.NaN())

	anomalies := b.Clamp()
	if anomalies != 1 {
		t.Fatalf("expected 1 NaN anomaly, got %d", anomalies)
	}
	once := make([]float32, 4)
	copy(once, b.Data())

	if b.Clamp() != 0 {
		t.Fatal("second clamp found anomalies in clamped data")
	}
	for i := range once {
		if b.Data()[i] != once[i] {
			t.Fatalf("clamp(clamp(B)) != clamp(B) at %d", i)
		}
	}
	if b.Data()[0] != 1 || b.Data()[1] != -1 || b.Data()[2] != 0.4 || b.Data()[3] != 0 {
		t.Fatalf("unexpected clamp result: %v", b.Data())
	}
}

func TestPeakAndRMS(t *testing.T) {
	t.Log("stereo buffer with a known DC level per channel")

	b := NewAudioBuffer(100, 2)
	for f := 0; f < 100; f++ {
		b.Data()[f*2] = 0.5
		b.Data()[f*2+1] = -0.25
	}

	lp, rp := b.Peak()
	if lp != 0.5 || rp != 0.25 {
		t.Fatalf("peak: got %v/%v", lp, rp)
	}

	lr, rr := b.RMS()
	if math.Abs(float64(lr)-0.5) > 1e-6 || math.Abs(float64(rr)-0.25) > 1e-6 {
		t.Fatalf("rms: got %v/%v", lr, rr)
	}
}

func TestPeakMonoReportsBothSides(t *testing.T) {
	b := NewAudioBuffer(10, 1)
	b.Data()[3] = -0.8

	lp, rp := b.Peak()
	if lp != 0.8 || rp != 0.8 {
		t.Fatalf("mono peak must mirror: got %v/%v", lp, rp)
	}
}
