package synth

import "github.com/paperdaw/paperdaw-go/internal/dsp"

const (
	kickFreq     = 60.0
	kickDecay    = 20.0
	lowKickFreq  = 50.0
	lowKickDecay = 15.0
	drumSeconds  = 0.1
	clapSeconds  = 0.05
	clapEnvSteep = 20.0
	clapCutoff   = 2000.0
	noiseStddev  = 0.1
)

// renderDrum places one-shot percussion on K (kick), B (low kick),
// S (snare) and C (clap). Each hit is truncated or zero-padded to
// exactly one slot before mixing, so a hit never bleeds into the next
// slot. Unknown symbols, rests and sustains are silent.
func renderDrum(tokens []string, tempo int) []float64 {
	out := make([]float64, BufferLength(tempo, len(tokens)))
	kick := dsp.DecayedSine(kickFreq, kickDecay, drumSeconds, SampleRate)
	lowKick := dsp.DecayedSine(lowKickFreq, lowKickDecay, drumSeconds, SampleRate)
	snare := dsp.Noise(int(SampleRate*drumSeconds), noiseStddev)
	clap := makeClap()

	slotSamples := SampleRate * SlotDuration(tempo)
	width := int(slotSamples)
	for i, tok := range tokens {
		start := int(float64(i) * slotSamples)
		var hit []float64
		switch tok {
		case "K":
			hit = kick
		case "B":
			hit = lowKick
		case "S":
			hit = snare
		case "C":
			hit = clap
		default:
			continue
		}
		addAt(out, fitToSlot(hit, width), start)
	}
	return out
}

// makeClap builds a short noise burst with a steep exponential
// envelope, rounded off by a 4-pole lowpass at clapCutoff.
func makeClap() []float64 {
	clap := dsp.Noise(int(SampleRate*clapSeconds), noiseStddev)
	dsp.ApplyExpRamp(clap, clapEnvSteep)
	dsp.NewLowpass4(SampleRate, clapCutoff).Apply(clap)
	return clap
}
