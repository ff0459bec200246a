package synth

import "github.com/paperdaw/paperdaw-go/internal/dsp"

const (
	clickFreq    = 1000.0
	accentFreq   = 1500.0
	clickDecay   = 20.0
	clickSeconds = 0.05
)

// renderMetronome places a short sine click on every '@' (downbeat)
// and a higher-pitched one on every '$' (accent). All other symbols
// are silent slots.
func renderMetronome(tokens []string, tempo int) []float64 {
	out := make([]float64, BufferLength(tempo, len(tokens)))
	click := dsp.DecayedSine(clickFreq, clickDecay, clickSeconds, SampleRate)
	accent := dsp.DecayedSine(accentFreq, clickDecay, clickSeconds, SampleRate)
	slotSamples := SampleRate * SlotDuration(tempo)
	for i, tok := range tokens {
		start := int(float64(i) * slotSamples)
		switch tok {
		case "@":
			addAt(out, click, start)
		case "$":
			addAt(out, accent, start)
		}
	}
	return out
}
