// Package dsp holds the sample-level building blocks shared by the
// track synthesizers: tone and noise generators and the envelope
// shapes the one-shot instrument sounds are cut from.
package dsp

import (
	"math"
	"math/rand"
)

// Sine renders n samples of a sine tone at freq Hz and the given
// amplitude.
func Sine(freq, amp float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freq / float64(sampleRate)
	for i := range out {
		out[i] = amp * math.Sin(w*float64(i))
	}
	return out
}

// DecayedSine renders seconds worth of a unit sine tone shaped by an
// exp(-decay*t) envelope. Used for clicks and kick drums.
func DecayedSine(freq, decay, seconds float64, sampleRate int) []float64 {
	n := int(float64(sampleRate) * seconds)
	out := make([]float64, n)
	dt := 1 / float64(sampleRate)
	for i := range out {
		t := float64(i) * dt
		out[i] = math.Sin(2*math.Pi*freq*t) * math.Exp(-decay*t)
	}
	return out
}

// Noise renders n samples of Gaussian white noise with the given
// standard deviation.
func Noise(n int, stddev float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rand.NormFloat64() * stddev
	}
	return out
}

// ApplyExpDecay shapes buf in place with exp(-i/tauSamples), the
// sample-indexed decay used by the hat voices.
func ApplyExpDecay(buf []float64, tauSamples float64) {
	for i := range buf {
		buf[i] *= math.Exp(-float64(i) / tauSamples)
	}
}

// ApplyExpRamp shapes buf in place with an envelope falling from 1 to
// exp(-k) across the whole buffer.
func ApplyExpRamp(buf []float64, k float64) {
	if len(buf) < 2 {
		return
	}
	step := k / float64(len(buf)-1)
	for i := range buf {
		buf[i] *= math.Exp(-step * float64(i))
	}
}
