// Package notation turns raw grid-notation text into symbol tokens and
// note events. Every token occupies exactly one sixteenth-note slot;
// bar separators are organizational and never survive tokenization.
package notation

import (
	"fmt"
	"math"
	"strings"
)

const (
	// Rest silences one slot on every track kind.
	Rest = "."
	// Sustain extends the preceding note by one slot on melodic tracks;
	// percussive tracks treat it as a rest.
	Sustain = "-"
)

var noteOffsets = map[string]int{
	"C": 0, "C#": 1, "D": 2, "D#": 3, "E": 4, "F": 5,
	"F#": 6, "G": 7, "G#": 8, "A": 9, "A#": 10, "B": 11,
}

// Tokenize splits a notation string into its symbol tokens. Bar
// separators ('|') are stripped first and never become tokens, even
// when written flush against a symbol. Empty or separator-only input
// yields no tokens; there is no failure mode.
func Tokenize(text string) []string {
	return strings.Fields(strings.ReplaceAll(text, "|", " "))
}

// NoteEvent is one resolved melodic note: a pitch token, the slot it
// starts on, and how many slots it sounds for (the pitch slot itself
// plus any folded sustains).
type NoteEvent struct {
	Pitch string
	Start int
	Slots int
}

// FoldNotes folds sustain tokens into the preceding pitch token,
// producing the note events a melodic renderer plays. A '-' with no
// note in flight is dropped, a '.' ends the note in flight, and a note
// still in flight at the end of the sequence is flushed with its
// accumulated length.
func FoldNotes(tokens []string) []NoteEvent {
	var events []NoteEvent
	holding := false
	var pitch string
	var start, run int
	for i, tok := range tokens {
		switch tok {
		case Sustain:
			if holding {
				run++
			}
		case Rest:
			if holding {
				events = append(events, NoteEvent{Pitch: pitch, Start: start, Slots: run})
				holding = false
			}
		default:
			if holding {
				events = append(events, NoteEvent{Pitch: pitch, Start: start, Slots: run})
			}
			pitch, start, run = tok, i, 1
			holding = true
		}
	}
	if holding {
		events = append(events, NoteEvent{Pitch: pitch, Start: start, Slots: run})
	}
	return events
}

// PitchFrequency resolves a pitch token of the form letter, optional
// '#', octave digit (e.g. "C#4") to its equal-temperament frequency in
// Hz. An unrecognized token resolves to 440 Hz (A4) alongside a
// non-nil error; callers treat that error as a diagnostic, not a
// failure.
func PitchFrequency(token string) (float64, error) {
	if len(token) < 2 {
		return 440, fmt.Errorf("invalid note %q", token)
	}
	octaveDigit := token[len(token)-1]
	if octaveDigit < '0' || octaveDigit > '9' {
		return 440, fmt.Errorf("invalid note %q", token)
	}
	semitone, ok := noteOffsets[token[:len(token)-1]]
	if !ok {
		return 440, fmt.Errorf("invalid note %q", token)
	}
	octave := int(octaveDigit - '0')
	return 440 * math.Pow(2, float64(semitone-9)/12+float64(octave-4)), nil
}
