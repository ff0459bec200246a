package synth

import (
	"math"
	"testing"
)

func energy(buf []float64) float64 {
	var sum float64
	for _, s := range buf {
		sum += s * s
	}
	return sum
}

func TestBufferLengthAcrossTempos(t *testing.T) {
	tokens := []string{"K", "B", ".", ".", "S"}
	for _, tempo := range []int{5, 33, 120, 240, 480} {
		want := math.Round(44100 * 60 / float64(tempo) / 4 * float64(len(tokens)))
		for _, kind := range Kinds() {
			buf, _ := Render(kind, tokens, tempo)
			if math.Abs(float64(len(buf))-want) > 1 {
				t.Fatalf("%v at tempo %d: expected %d samples (±1), got %d", kind, tempo, int(want), len(buf))
			}
		}
	}
}

func TestEmptyNotationRendersEmptyBuffer(t *testing.T) {
	for _, kind := range Kinds() {
		buf, diags := Render(kind, nil, 120)
		if len(buf) != 0 {
			t.Fatalf("%v: expected empty buffer, got %d samples", kind, len(buf))
		}
		if len(diags) != 0 {
			t.Fatalf("%v: unexpected diagnostics %v", kind, diags)
		}
	}
}

func TestMetronomeClicksOnBeatSymbols(t *testing.T) {
	buf, _ := Render(Metronome, []string{"@", ".", "$", "."}, 120)
	slotF := 44100 * 60.0 / 120 / 4
	restStart := int(1 * slotF)
	accentStart := int(2 * slotF)
	if energy(buf[:restStart]) == 0 {
		t.Fatalf("expected click in downbeat slot")
	}
	if energy(buf[restStart:accentStart]) != 0 {
		t.Fatalf("expected silence in rest slot")
	}
	if energy(buf[accentStart:]) == 0 {
		t.Fatalf("expected accent click in third slot")
	}
}

func TestLyricsRenderSilence(t *testing.T) {
	buf, _ := Render(Lyrics, []string{"Hi~There", "-", "Im", "Claude"}, 120)
	if len(buf) != BufferLength(120, 4) {
		t.Fatalf("expected %d samples, got %d", BufferLength(120, 4), len(buf))
	}
	if energy(buf) != 0 {
		t.Fatalf("expected all-silent lyrics buffer")
	}
}

func TestDrumHitsStayInsideTheirSlot(t *testing.T) {
	// Tempo fast enough that a slot (~62 ms at 240 BPM) is shorter than
	// some one-shots would like; the hit must still be cut at the slot.
	buf, _ := Render(Drum, []string{"S", "."}, 480)
	slotF := 44100 * 60.0 / 480 / 4
	slot := int(slotF)
	if energy(buf[:slot]) == 0 {
		t.Fatalf("expected snare in first slot")
	}
	if energy(buf[slot:]) != 0 {
		t.Fatalf("expected snare truncated to its slot, found spill")
	}
}

func TestDrumUnknownSymbolsSilent(t *testing.T) {
	buf, _ := Render(Drum, []string{"-", "?", "Z"}, 120)
	if energy(buf) != 0 {
		t.Fatalf("expected unknown drum symbols to render silence")
	}
}

func TestHatOverlapsFollowingSlot(t *testing.T) {
	// At 480 BPM a slot is ~31 ms; a 100 ms open hat must ring past it.
	buf, _ := Render(Hat, []string{"O", "."}, 480)
	slotF := 44100 * 60.0 / 480 / 4
	slot := int(slotF)
	if energy(buf[:slot]) == 0 {
		t.Fatalf("expected open hat in its slot")
	}
	if energy(buf[slot:]) == 0 {
		t.Fatalf("expected open hat to overlap into the following slot")
	}
}

func TestMelodySustainedNote(t *testing.T) {
	buf, diags := Render(Melody, []string{"C4", "-", "-", "."}, 120)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	slot := BufferLength(120, 1)
	if energy(buf[:3*slot]) == 0 {
		t.Fatalf("expected tone across sustained slots")
	}
	if energy(buf[3*slot:]) != 0 {
		t.Fatalf("expected silence in final rest slot")
	}
}

func TestMelodyInvalidPitchFallsBack(t *testing.T) {
	buf, diags := Render(Melody, []string{"H9", ".", "C4"}, 120)
	if len(diags) != 1 || diags[0].Token != "H9" || diags[0].Slot != 0 {
		t.Fatalf("expected one diagnostic for H9 at slot 0, got %v", diags)
	}
	slot := BufferLength(120, 1)
	if energy(buf[:slot]) == 0 {
		t.Fatalf("expected fallback A4 tone for invalid pitch")
	}
	if energy(buf[2*slot:]) == 0 {
		t.Fatalf("expected synthesis to continue after invalid pitch")
	}
}

func TestBassAddsSecondHarmonic(t *testing.T) {
	bassBuf, _ := Render(Bass, []string{"A2"}, 120)
	melodyBuf, _ := Render(Melody, []string{"A2"}, 120)
	if energy(bassBuf) <= energy(melodyBuf) {
		t.Fatalf("expected bass harmonic to add energy over the plain sine")
	}
}

func TestKindNames(t *testing.T) {
	want := map[Kind]string{
		Metronome: "Metronome",
		Lyrics:    "Lyrics",
		Drum:      "Kick/Snare",
		Hat:       "Hat",
		Melody:    "Melody",
		Bass:      "Bass",
	}
	for k, name := range want {
		if k.String() != name {
			t.Fatalf("expected %q, got %q", name, k.String())
		}
	}
	if Kind(99).String() != "Unknown" {
		t.Fatalf("expected Unknown for out-of-range kind")
	}
}
