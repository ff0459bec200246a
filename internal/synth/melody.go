package synth

import (
	"math"

	"github.com/paperdaw/paperdaw-go/internal/notation"
)

const toneAmp = 0.3

// renderMelodic folds sustain tokens into note events and renders each
// event with the given tone generator. Melody and Bass share the fold;
// only the tone differs.
func renderMelodic(tokens []string, tempo int, tone func(freq, seconds float64) []float64) ([]float64, []Diag) {
	out := make([]float64, BufferLength(tempo, len(tokens)))
	slotDur := SlotDuration(tempo)
	slotSamples := SampleRate * slotDur
	var diags []Diag
	for _, ev := range notation.FoldNotes(tokens) {
		freq, err := notation.PitchFrequency(ev.Pitch)
		if err != nil {
			diags = append(diags, Diag{Token: ev.Pitch, Slot: ev.Start})
		}
		snd := tone(freq, slotDur*float64(ev.Slots))
		addAt(out, snd, int(float64(ev.Start)*slotSamples))
	}
	return out, diags
}

func melodyTone(freq, seconds float64) []float64 {
	n := int(SampleRate * seconds)
	out := make([]float64, n)
	w := 2 * math.Pi * freq / SampleRate
	for i := range out {
		out[i] = toneAmp * math.Sin(w*float64(i))
	}
	return out
}

// bassTone adds a half-amplitude second harmonic under the
// fundamental.
func bassTone(freq, seconds float64) []float64 {
	n := int(SampleRate * seconds)
	out := make([]float64, n)
	w := 2 * math.Pi * freq / SampleRate
	for i := range out {
		p := w * float64(i)
		out[i] = toneAmp * (math.Sin(p) + 0.5*math.Sin(2*p))
	}
	return out
}
