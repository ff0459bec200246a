package synth

import "github.com/paperdaw/paperdaw-go/internal/dsp"

// Hat voices are decaying noise bursts. Unlike the drum one-shots they
// are not cut to slot width: an open hat started near the end of a
// slot rings into the following slots, truncated only by the end of
// the track buffer.
var hatVoices = map[string]struct {
	seconds float64
	tau     float64 // decay time constant in seconds
}{
	"H": {seconds: 0.05, tau: 0.01},
	"O": {seconds: 0.1, tau: 0.05},
	"P": {seconds: 0.075, tau: 0.025},
}

func renderHat(tokens []string, tempo int) []float64 {
	out := make([]float64, BufferLength(tempo, len(tokens)))
	voices := make(map[string][]float64, len(hatVoices))
	for sym, v := range hatVoices {
		burst := dsp.Noise(int(SampleRate*v.seconds), noiseStddev)
		dsp.ApplyExpDecay(burst, SampleRate*v.tau)
		voices[sym] = burst
	}
	slotSamples := SampleRate * SlotDuration(tempo)
	for i, tok := range tokens {
		if burst, ok := voices[tok]; ok {
			addAt(out, burst, int(float64(i)*slotSamples))
		}
	}
	return out
}
