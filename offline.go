package paperdaw

import (
	"encoding/binary"
	"math"

	"github.com/viterin/vek"

	intmixer "github.com/paperdaw/paperdaw-go/internal/mixer"
	intnotation "github.com/paperdaw/paperdaw-go/internal/notation"
	intsynth "github.com/paperdaw/paperdaw-go/internal/synth"
)

// Part is one track's input to an offline render.
type Part struct {
	Kind        TrackKind
	Notation    string
	GainControl int
}

// RenderTrack synthesizes one track without a device. Tempo and gain
// are clamped to their documented ranges; invalid pitches render at
// the A4 fallback exactly as live playback does.
func RenderTrack(kind TrackKind, notation string, tempo, gainControl int) []float64 {
	tempo = clampTempo(tempo)
	tokens := intnotation.Tokenize(notation)
	buf, _ := intsynth.Render(kind.synthKind(), tokens, tempo)
	if gain := GainFromControl(gainControl); gain != 1 && len(buf) > 0 {
		vek.MulNumber_Inplace(buf, gain)
	}
	return buf
}

// RenderMix renders every part and combines them the same way
// ensemble playback does: summed without normalization, shorter parts
// zero-padded to the longest.
func RenderMix(parts []Part, tempo int) []float64 {
	m := intmixer.New()
	for _, part := range parts {
		m.Add(part.Kind.String(), RenderTrack(part.Kind, part.Notation, tempo, part.GainControl))
	}
	return m.Combine()
}

// EncodeWAVFloat32LE encodes samples as an IEEE-float WAV file
// (format tag 3, 32-bit little-endian).
func EncodeWAVFloat32LE(samples []float64, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(float32(s)))
	}
	return out
}
