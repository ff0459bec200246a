package clock

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu      sync.Mutex
	symbols []string
}

func (r *recorder) emit(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.symbols = append(r.symbols, s)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.symbols...)
}

func TestClockEmitsAllTokensInOrder(t *testing.T) {
	tokens := []string{"K", "B", ".", ".", "S"}
	rec := &recorder{}
	c := New(tokens, time.Millisecond, rec.emit)
	c.Start()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("clock did not finish")
	}
	got := rec.snapshot()
	if len(got) != len(tokens) {
		t.Fatalf("expected %d emissions, got %v", len(tokens), got)
	}
	for i := range tokens {
		if got[i] != tokens[i] {
			t.Fatalf("emission %d = %q, want %q", i, got[i], tokens[i])
		}
	}
}

func TestClockStopHaltsEmission(t *testing.T) {
	tokens := make([]string, 1000)
	for i := range tokens {
		tokens[i] = "."
	}
	rec := &recorder{}
	c := New(tokens, 10*time.Millisecond, rec.emit)
	c.Start()
	time.Sleep(25 * time.Millisecond)
	c.Stop()
	count := len(rec.snapshot())
	if count == 0 || count == len(tokens) {
		t.Fatalf("expected partial emission, got %d of %d", count, len(tokens))
	}
	// No emission after Stop returns.
	time.Sleep(30 * time.Millisecond)
	if after := len(rec.snapshot()); after != count {
		t.Fatalf("emission continued after Stop: %d then %d", count, after)
	}
}

func TestClockStopIsIdempotent(t *testing.T) {
	rec := &recorder{}
	c := New([]string{"@", "$"}, time.Millisecond, rec.emit)
	c.Start()
	c.Stop()
	c.Stop()
}

func TestClockStopAfterNaturalFinish(t *testing.T) {
	rec := &recorder{}
	c := New([]string{"@"}, time.Millisecond, rec.emit)
	c.Start()
	<-c.Done()
	c.Stop() // already finished: must not hang or error
}

func TestClockIndependence(t *testing.T) {
	recA := &recorder{}
	recB := &recorder{}
	a := New([]string{".", ".", ".", "."}, 20*time.Millisecond, recA.emit)
	b := New([]string{"@", "$"}, time.Millisecond, recB.emit)
	a.Start()
	b.Start()
	<-b.Done()
	a.Stop()
	if len(recB.snapshot()) != 2 {
		t.Fatalf("stopping one clock must not affect another")
	}
}
