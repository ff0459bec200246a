// Package paperdaw compiles plain-text symbol grids into audio: it
// tokenizes per-track notation, synthesizes a PCM buffer per track,
// mixes the active tracks into one master buffer and plays it, while
// per-track symbol clocks feed display ticks in lockstep with the
// audio timing.
package paperdaw

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/viterin/vek"

	intaudio "github.com/paperdaw/paperdaw-go/internal/audio"
	intclock "github.com/paperdaw/paperdaw-go/internal/clock"
	intmixer "github.com/paperdaw/paperdaw-go/internal/mixer"
	intnotation "github.com/paperdaw/paperdaw-go/internal/notation"
	intsynth "github.com/paperdaw/paperdaw-go/internal/synth"
)

const (
	// SampleRate is fixed for the whole system; tracks never negotiate
	// their own.
	SampleRate = intsynth.SampleRate

	MinTempo     = 5
	MaxTempo     = 480
	DefaultTempo = 120

	// DefaultGainControl maps to unity gain (0 dB).
	DefaultGainControl = 50
)

// TrackKind identifies one of the six fixed track roles.
type TrackKind int

const (
	Metronome TrackKind = iota
	Lyrics
	Drum
	Hat
	Melody
	Bass
)

func (k TrackKind) String() string { return k.synthKind().String() }

func (k TrackKind) synthKind() intsynth.Kind {
	switch k {
	case Metronome:
		return intsynth.Metronome
	case Lyrics:
		return intsynth.Lyrics
	case Drum:
		return intsynth.Drum
	case Hat:
		return intsynth.Hat
	case Melody:
		return intsynth.Melody
	case Bass:
		return intsynth.Bass
	default:
		return intsynth.Lyrics
	}
}

// TrackKinds returns every track kind in session order.
func TrackKinds() []TrackKind {
	return []TrackKind{Metronome, Lyrics, Drum, Hat, Melody, Bass}
}

// GainFromControl maps a bounded control value (0-100, clamped) to a
// gain scalar on a power curve: 50 is unity, 0 is silence, 100 boosts
// by roughly +14.5 dB.
func GainFromControl(control int) float64 {
	if control < 0 {
		control = 0
	}
	if control > 100 {
		control = 100
	}
	return math.Pow(float64(control)/50, 2.4)
}

// GainDB converts a gain scalar to decibels. Zero gain yields -Inf.
func GainDB(gain float64) float64 {
	return 20 * math.Log10(gain)
}

// State is the playback controller's current mode.
type State int

const (
	Idle State = iota
	SoloPlaying
	EnsemblePlaying
)

// EventKind classifies events delivered by Watch().
type EventKind int

const (
	// EventSymbol carries a track's display text for the current slot.
	EventSymbol EventKind = iota
	// EventDiagnostic reports a recovered synthesis problem (an
	// unresolvable pitch rendered at the A4 fallback).
	EventDiagnostic
	// EventSinkStarted and EventSinkStopped bracket a sink invocation.
	// A natural end of playback emits EventSinkStopped without
	// changing the controller state.
	EventSinkStarted
	EventSinkStopped
)

// Event is one entry on the Watch channel.
type Event struct {
	Kind  EventKind
	Track TrackKind
	Text  string
}

// Sink is the audio output boundary. The controller hands it a
// finished mono buffer at SampleRate; the sink owns the device.
type Sink interface {
	// Start begins playback of samples, replacing any playback in
	// flight. It must not block for the duration of the buffer.
	Start(samples []float64) error
	// Stop halts playback and joins the playing unit. Idempotent and
	// safe with nothing running.
	Stop()
	// Done is closed when the current playback finishes or is stopped;
	// already closed when nothing is playing.
	Done() <-chan struct{}
}

// NotationSource is the narrow boundary to an external notation
// generator. The core never calls it on its own; the editor does,
// through GenerateNotation.
type NotationSource interface {
	RequestNotation(kind TrackKind) (string, error)
}

type track struct {
	name        string
	kind        TrackKind
	notation    string
	gainControl int
	clock       *intclock.Clock

	// Display state, touched only by the track's clock callback while
	// the clock runs and by the controller while it is stopped.
	beatCount   int
	lastDisplay string
}

type Option func(*Player)

// WithSink replaces the default device-backed sink.
func WithSink(s Sink) Option {
	return func(p *Player) { p.sink = s }
}

// WithTempo sets the initial tempo, clamped to [MinTempo, MaxTempo].
func WithTempo(bpm int) Option {
	return func(p *Player) { p.tempo = clampTempo(bpm) }
}

// WithNotationSource installs the external notation generator used by
// GenerateNotation.
func WithNotationSource(src NotationSource) Option {
	return func(p *Player) { p.notationSource = src }
}

// Player is the playback controller. It owns the mixer, the six
// session tracks, the tempo and the global-playing flag; one mutex
// guards every state transition, including the check that decides
// whether a solo play starts its own sink invocation.
type Player struct {
	mu             sync.Mutex
	tracks         map[TrackKind]*track
	tempo          int
	mixer          *intmixer.Mixer
	sink           Sink
	playingAll     bool
	state          State
	solo           TrackKind
	notationSource NotationSource

	eventCh   chan Event
	eventChMu sync.Mutex
}

// NewPlayer creates a controller with one track per kind. Tracks live
// for the whole session; only their notation and gain change.
func NewPlayer(opts ...Option) *Player {
	p := &Player{
		tracks: make(map[TrackKind]*track, 6),
		tempo:  DefaultTempo,
		mixer:  intmixer.New(),
	}
	for _, kind := range TrackKinds() {
		p.tracks[kind] = &track{
			name:        kind.String(),
			kind:        kind,
			gainControl: DefaultGainControl,
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sink == nil {
		p.sink = intaudio.NewSink(SampleRate)
	}
	return p
}

// Watch returns a buffered channel (cap 8) receiving display ticks,
// diagnostics and sink lifecycle events. Events are dropped when the
// channel is full; only the most recent Watch channel receives them.
func (p *Player) Watch() <-chan Event {
	ch := make(chan Event, 8)
	p.eventChMu.Lock()
	p.eventCh = ch
	p.eventChMu.Unlock()
	return ch
}

func (p *Player) sendEvent(ev Event) {
	p.eventChMu.Lock()
	ch := p.eventCh
	p.eventChMu.Unlock()
	if ch != nil {
		select {
		case ch <- ev:
		default:
			// Channel full; drop event
		}
	}
}

// SetTempo sets the session tempo, clamped to [MinTempo, MaxTempo].
// Takes effect on the next Play or PlayAll.
func (p *Player) SetTempo(bpm int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tempo = clampTempo(bpm)
}

func (p *Player) Tempo() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tempo
}

// SetNotation replaces a track's notation text. No validation happens
// here; the text is tokenized on the next play.
func (p *Player) SetNotation(kind TrackKind, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracks[kind].notation = text
}

func (p *Player) Notation(kind TrackKind) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracks[kind].notation
}

// SetGainControl sets a track's gain control value, clamped to
// [0, 100].
func (p *Player) SetGainControl(kind TrackKind, control int) {
	if control < 0 {
		control = 0
	}
	if control > 100 {
		control = 100
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracks[kind].gainControl = control
}

func (p *Player) GainControl(kind TrackKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracks[kind].gainControl
}

// Gain returns the track's current gain scalar.
func (p *Player) Gain(kind TrackKind) float64 {
	return GainFromControl(p.GainControl(kind))
}

// State returns the controller's current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SoloTrack returns the track being played solo; ok is false unless
// the controller is in SoloPlaying.
func (p *Player) SoloTrack() (TrackKind, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.solo, p.state == SoloPlaying
}

// GenerateNotation asks the configured NotationSource for replacement
// notation and installs it on the track. Returns an error when no
// source is configured or the source fails; the track is left
// untouched on failure.
func (p *Player) GenerateNotation(kind TrackKind) error {
	p.mu.Lock()
	src := p.notationSource
	p.mu.Unlock()
	if src == nil {
		return fmt.Errorf("no notation source configured")
	}
	text, err := src.RequestNotation(kind)
	if err != nil {
		return err
	}
	p.SetNotation(kind, text)
	return nil
}

// Play plays one track solo. Any current activity is stopped fully
// first; the track is synthesized, registered alone in the mixer, its
// symbol clock started, and a dedicated sink invocation begun unless
// ensemble playback already drives the sink.
func (p *Player) Play(kind TrackKind) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopAllLocked()

	tr := p.tracks[kind]
	p.mixer.Add(tr.name, p.renderLocked(tr))
	p.startClockLocked(tr)
	if !p.playingAll {
		if err := p.sink.Start(p.mixer.Combine()); err != nil {
			p.stopAllLocked()
			return err
		}
		p.watchSinkLocked()
		p.sendEvent(Event{Kind: EventSinkStarted})
	}
	p.state = SoloPlaying
	p.solo = kind
	return nil
}

// PlayAll plays the whole ensemble: every track is synthesized and
// registered, every symbol clock started, and one sink invocation is
// fed the combined master buffer.
func (p *Player) PlayAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopAllLocked()

	p.playingAll = true
	p.mixer.Clear()
	for _, kind := range TrackKinds() {
		tr := p.tracks[kind]
		p.mixer.Add(tr.name, p.renderLocked(tr))
		p.startClockLocked(tr)
	}
	if err := p.sink.Start(p.mixer.Combine()); err != nil {
		p.stopAllLocked()
		return err
	}
	p.watchSinkLocked()
	p.sendEvent(Event{Kind: EventSinkStarted})
	p.state = EnsemblePlaying
	return nil
}

// StopAll stops every symbol clock, the sink invocation and clears the
// mixer, returning the controller to Idle. Safe and silent with
// nothing running; calling it twice in a row leaves Idle both times.
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopAllLocked()
}

func (p *Player) stopAllLocked() {
	p.playingAll = false
	for _, kind := range TrackKinds() {
		tr := p.tracks[kind]
		if tr.clock != nil {
			tr.clock.Stop()
			tr.clock = nil
		}
		tr.lastDisplay = ""
	}
	p.tracks[Metronome].beatCount = 0
	p.sink.Stop()
	p.mixer.Clear()
	p.state = Idle
}

// renderLocked synthesizes a track at the current tempo with its gain
// applied, reporting pitch fallbacks as diagnostics.
func (p *Player) renderLocked(tr *track) []float64 {
	tokens := intnotation.Tokenize(tr.notation)
	buf, diags := intsynth.Render(tr.kind.synthKind(), tokens, p.tempo)
	for _, d := range diags {
		p.sendEvent(Event{
			Kind:  EventDiagnostic,
			Track: tr.kind,
			Text:  fmt.Sprintf("invalid note %q at slot %d; using A4", d.Token, d.Slot),
		})
	}
	if gain := GainFromControl(tr.gainControl); gain != 1 && len(buf) > 0 {
		vek.MulNumber_Inplace(buf, gain)
	}
	return buf
}

// startClockLocked resets the track's display state and starts its
// symbol clock. The clock's callback is the only writer of that state
// until the clock is joined again.
func (p *Player) startClockLocked(tr *track) {
	tokens := intnotation.Tokenize(tr.notation)
	interval := time.Duration(intsynth.SlotDuration(p.tempo) * float64(time.Second))
	tr.lastDisplay = ""
	if tr.kind == Metronome {
		tr.beatCount = 0
		p.sendEvent(Event{Kind: EventSymbol, Track: Metronome, Text: "Beat 0"})
	}
	tr.clock = intclock.New(tokens, interval, func(symbol string) {
		if text, ok := displayText(tr, symbol); ok {
			p.sendEvent(Event{Kind: EventSymbol, Track: tr.kind, Text: text})
		}
	})
	tr.clock.Start()
}

// watchSinkLocked emits EventSinkStopped when the invocation started
// under the current lock finishes, naturally or via Stop. A natural
// end does not transition the controller; only Play, PlayAll and
// StopAll do.
func (p *Player) watchSinkLocked() {
	done := p.sink.Done()
	go func() {
		<-done
		p.sendEvent(Event{Kind: EventSinkStopped})
	}()
}

// displayText translates a raw symbol into the track's display form.
// Metronome counts beats on '@' and '$' and shows nothing for other
// symbols; melodic tracks hold the previous pitch text through
// sustains and show the rest symbol on rests.
func displayText(tr *track, symbol string) (string, bool) {
	switch tr.kind {
	case Metronome:
		if symbol == "@" || symbol == "$" {
			tr.beatCount++
			return fmt.Sprintf("Beat %d", tr.beatCount), true
		}
		return "", false
	case Melody, Bass:
		switch symbol {
		case intnotation.Sustain:
			if tr.lastDisplay == "" {
				return "", false
			}
			return tr.lastDisplay, true
		case intnotation.Rest:
			tr.lastDisplay = ""
			return intnotation.Rest, true
		default:
			tr.lastDisplay = symbol
			return symbol, true
		}
	default:
		return symbol, true
	}
}

func clampTempo(bpm int) int {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}
