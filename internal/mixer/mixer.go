// Package mixer collects the per-track PCM buffers that are currently
// active for playback and combines them into one master buffer.
package mixer

import (
	"sync"

	"github.com/viterin/vek"
)

// Mixer maps track names to their rendered buffers. All access is
// serialized by one mutex; buffers are never mutated after Add, only
// replaced wholesale.
type Mixer struct {
	mu     sync.Mutex
	tracks map[string][]float64
}

func New() *Mixer {
	return &Mixer{tracks: make(map[string][]float64)}
}

// Add registers (or replaces) a track's buffer.
func (m *Mixer) Add(name string, buf []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks[name] = buf
}

// Remove drops a track. Removing an absent track is a no-op.
func (m *Mixer) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tracks, name)
}

// Clear drops every track.
func (m *Mixer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks = make(map[string][]float64)
}

// Len returns the number of registered tracks.
func (m *Mixer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tracks)
}

// Combine sums every track sample-by-sample into a fresh buffer as
// long as the longest track; shorter tracks are implicitly
// zero-padded. The sum is not normalized by track count, so a dense
// ensemble can exceed ±1.0. With no tracks the result is empty.
func (m *Mixer) Combine() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	maxLen := 0
	for _, buf := range m.tracks {
		if len(buf) > maxLen {
			maxLen = len(buf)
		}
	}
	out := make([]float64, maxLen)
	for _, buf := range m.tracks {
		if len(buf) > 0 {
			vek.Add_Inplace(out[:len(buf)], buf)
		}
	}
	return out
}
