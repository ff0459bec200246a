package dsp

import (
	"math"
	"testing"
)

func rms(buf []float64) float64 {
	var sum float64
	for _, s := range buf {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(buf)))
}

func TestSineAmplitudeAndLength(t *testing.T) {
	buf := Sine(440, 0.3, 44100, 4410)
	if len(buf) != 4410 {
		t.Fatalf("expected 4410 samples, got %d", len(buf))
	}
	var peak float64
	for _, s := range buf {
		if math.Abs(s) > peak {
			peak = math.Abs(s)
		}
	}
	if peak < 0.29 || peak > 0.3+1e-9 {
		t.Fatalf("expected peak near 0.3, got %f", peak)
	}
}

func TestDecayedSineEnvelopeFalls(t *testing.T) {
	buf := DecayedSine(1000, 20, 0.05, 44100)
	if len(buf) != 2205 {
		t.Fatalf("expected 2205 samples, got %d", len(buf))
	}
	head := rms(buf[:200])
	tail := rms(buf[len(buf)-200:])
	if tail >= head {
		t.Fatalf("expected decaying envelope, head rms %f tail rms %f", head, tail)
	}
}

func TestNoiseSpread(t *testing.T) {
	buf := Noise(44100, 0.1)
	got := rms(buf)
	if got < 0.08 || got > 0.12 {
		t.Fatalf("expected rms near 0.1, got %f", got)
	}
}

func TestApplyExpDecay(t *testing.T) {
	buf := make([]float64, 100)
	for i := range buf {
		buf[i] = 1
	}
	ApplyExpDecay(buf, 50)
	if buf[0] != 1 {
		t.Fatalf("expected first sample untouched, got %f", buf[0])
	}
	want := math.Exp(-99.0 / 50)
	if math.Abs(buf[99]-want) > 1e-12 {
		t.Fatalf("expected last sample %f, got %f", want, buf[99])
	}
}

func TestApplyExpRampEndpoints(t *testing.T) {
	buf := make([]float64, 64)
	for i := range buf {
		buf[i] = 1
	}
	ApplyExpRamp(buf, 20)
	if buf[0] != 1 {
		t.Fatalf("expected envelope to start at 1, got %f", buf[0])
	}
	want := math.Exp(-20)
	if math.Abs(buf[63]-want) > 1e-12 {
		t.Fatalf("expected envelope to end at exp(-20), got %g", buf[63])
	}
}

func TestLowpass4Attenuation(t *testing.T) {
	f := NewLowpass4(44100, 2000)
	low := Sine(200, 1, 44100, 44100)
	f.Apply(low)
	f.Reset()
	high := Sine(8000, 1, 44100, 44100)
	f.Apply(high)

	lowRMS := rms(low[4410:])
	highRMS := rms(high[4410:])
	if lowRMS < 0.6 {
		t.Fatalf("expected passband mostly preserved, rms %f", lowRMS)
	}
	if highRMS > lowRMS/10 {
		t.Fatalf("expected >20 dB stopband attenuation, low %f high %f", lowRMS, highRMS)
	}
}
