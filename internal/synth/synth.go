// Package synth renders tokenized grid notation into mono PCM, one
// rendering strategy per track kind. Every token occupies one
// sixteenth-note slot; every renderer returns a buffer of exactly
// BufferLength samples for its token count.
package synth

import "math"

// SampleRate is fixed for the whole system.
const SampleRate = 44100

// Kind selects the synthesis strategy for a track.
type Kind int

const (
	Metronome Kind = iota
	Lyrics
	Drum
	Hat
	Melody
	Bass
)

var kindNames = [...]string{"Metronome", "Lyrics", "Kick/Snare", "Hat", "Melody", "Bass"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Kinds returns every track kind in rendering order.
func Kinds() []Kind {
	return []Kind{Metronome, Lyrics, Drum, Hat, Melody, Bass}
}

// Diag reports a recoverable synthesis problem, currently only an
// unresolvable pitch token that was rendered at the A4 fallback.
type Diag struct {
	Token string
	Slot  int
}

// SlotDuration returns the length of one sixteenth-note slot in
// seconds at the given tempo.
func SlotDuration(tempo int) float64 {
	return 60 / float64(tempo) / 4
}

// BufferLength returns the sample count of a rendered buffer holding
// the given number of slots at the given tempo.
func BufferLength(tempo, slots int) int {
	return int(math.Round(SampleRate * SlotDuration(tempo) * float64(slots)))
}

// Render synthesizes one track's token sequence at the given tempo.
// The returned buffer always has BufferLength(tempo, len(tokens))
// samples; unknown symbols render as silence except on melodic tracks,
// where an unknown pitch sounds at 440 Hz and is reported as a Diag.
func Render(kind Kind, tokens []string, tempo int) ([]float64, []Diag) {
	switch kind {
	case Metronome:
		return renderMetronome(tokens, tempo), nil
	case Lyrics:
		return make([]float64, BufferLength(tempo, len(tokens))), nil
	case Drum:
		return renderDrum(tokens, tempo), nil
	case Hat:
		return renderHat(tokens, tempo), nil
	case Melody:
		return renderMelodic(tokens, tempo, melodyTone)
	case Bass:
		return renderMelodic(tokens, tempo, bassTone)
	default:
		return make([]float64, BufferLength(tempo, len(tokens))), nil
	}
}

// addAt mixes snd into out starting at offset, truncating at the end
// of out.
func addAt(out, snd []float64, offset int) {
	if offset < 0 || offset >= len(out) {
		return
	}
	n := len(snd)
	if offset+n > len(out) {
		n = len(out) - offset
	}
	for i := 0; i < n; i++ {
		out[offset+i] += snd[i]
	}
}

// fitToSlot truncates or zero-pads snd to exactly width samples.
func fitToSlot(snd []float64, width int) []float64 {
	if len(snd) >= width {
		return snd[:width]
	}
	padded := make([]float64, width)
	copy(padded, snd)
	return padded
}
