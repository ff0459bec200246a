package dsp

import "math"

// Butterworth pole pairs for a 4th-order filter split into two
// cascaded biquad sections.
var butterworth4Q = [2]float64{0.54119610, 1.30656296}

type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

func lowpassBiquad(sampleRate int, cutoff, q float64) biquad {
	w0 := 2 * math.Pi * cutoff / float64(sampleRate)
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha
	return biquad{
		b0: (1 - cosW0) / 2 / a0,
		b1: (1 - cosW0) / a0,
		b2: (1 - cosW0) / 2 / a0,
		a1: -2 * cosW0 / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

func (f *biquad) reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

// Lowpass4 is a 4-pole (24 dB/octave) Butterworth lowpass filter,
// built as two cascaded biquad sections.
type Lowpass4 struct {
	sections [2]biquad
}

// NewLowpass4 creates a 4-pole lowpass with the given cutoff in Hz.
func NewLowpass4(sampleRate int, cutoff float64) *Lowpass4 {
	var f Lowpass4
	for i, q := range butterworth4Q {
		f.sections[i] = lowpassBiquad(sampleRate, cutoff, q)
	}
	return &f
}

// Process filters one sample.
func (f *Lowpass4) Process(x float64) float64 {
	for i := range f.sections {
		x = f.sections[i].process(x)
	}
	return x
}

// Apply filters buf in place.
func (f *Lowpass4) Apply(buf []float64) {
	for i := range buf {
		buf[i] = f.Process(buf[i])
	}
}

// Reset clears the filter state.
func (f *Lowpass4) Reset() {
	for i := range f.sections {
		f.sections[i].reset()
	}
}
