// Package audio is the playback sink boundary: it hands a finished
// mono PCM buffer to the platform audio device and plays it to
// exhaustion. Device selection and buffering belong to the ebiten
// audio layer; nothing here touches samples after they are handed off.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// BufferSource streams a fixed mono float64 buffer as little-endian
// float32 stereo frames and reports io.EOF once drained.
type BufferSource struct {
	mu      sync.Mutex
	samples []float64
	pos     int
	drained chan struct{}
	signal  sync.Once
}

func NewBufferSource(samples []float64) *BufferSource {
	return &BufferSource{samples: samples, drained: make(chan struct{})}
}

// Drained is closed once every sample has been read by the device.
func (s *BufferSource) Drained() <-chan struct{} {
	return s.drained
}

func (s *BufferSource) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	if s.pos >= len(s.samples) {
		s.signal.Do(func() { close(s.drained) })
		return 0, io.EOF
	}
	n := 0
	for i := 0; i < frames && s.pos < len(s.samples); i++ {
		u := math.Float32bits(float32(s.samples[s.pos]))
		binary.LittleEndian.PutUint32(p[i*8:], u)
		binary.LittleEndian.PutUint32(p[i*8+4:], u)
		s.pos++
		n += 8
	}
	if s.pos >= len(s.samples) {
		s.signal.Do(func() { close(s.drained) })
	}
	return n, nil
}

func (s *BufferSource) Close() error { return nil }

// drainGrace covers the device-side buffer still sounding after the
// source reports drained.
const drainGrace = 200 * time.Millisecond

type invocation struct {
	player     *ebitaudio.Player
	source     *BufferSource
	stop       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
	finishOnce sync.Once
}

func (inv *invocation) run() {
	select {
	case <-inv.source.Drained():
		time.Sleep(drainGrace)
	case <-inv.stop:
	}
	inv.finishOnce.Do(func() {
		inv.player.Pause()
		inv.player.Close()
		close(inv.done)
	})
}

func (inv *invocation) halt() {
	inv.stopOnce.Do(func() { close(inv.stop) })
	<-inv.done
}

// Sink drives at most one playback invocation of a finished buffer at
// a time. Start replaces any invocation in flight; Stop joins it.
type Sink struct {
	sampleRate int
	mu         sync.Mutex
	current    *invocation
}

func NewSink(sampleRate int) *Sink {
	return &Sink{sampleRate: sampleRate}
}

// Start begins playing samples on the device, stopping any playback
// already in flight first. It returns once playback is running; use
// Done to observe completion.
func (s *Sink) Start(samples []float64) error {
	s.Stop()
	ctx, err := sharedAudioContext(s.sampleRate)
	if err != nil {
		return err
	}
	source := NewBufferSource(samples)
	pl, err := ctx.NewPlayerF32(source)
	if err != nil {
		return err
	}
	inv := &invocation{
		player: pl,
		source: source,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	pl.Play()
	go inv.run()
	s.mu.Lock()
	s.current = inv
	s.mu.Unlock()
	return nil
}

// Stop halts the current invocation and blocks until its goroutine has
// terminated. Calling Stop with nothing playing, or twice in a row, is
// a no-op.
func (s *Sink) Stop() {
	s.mu.Lock()
	inv := s.current
	s.current = nil
	s.mu.Unlock()
	if inv != nil {
		inv.halt()
	}
}

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Done returns a channel closed when the current invocation finishes,
// by exhaustion or by Stop. With no invocation it returns an
// already-closed channel.
func (s *Sink) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return s.current.done
	}
	return closedDone
}
