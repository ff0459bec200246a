// Package clock drives per-track display ticks: one goroutine per
// active track emits the track's symbols at slot intervals until the
// sequence ends or the clock is stopped.
package clock

import (
	"sync"
	"time"
)

// Clock walks a token sequence, invoking the emit callback for each
// token in order and sleeping one interval between tokens. Stop halts
// emission immediately: no token is emitted after Stop returns, though
// an emission already in flight when Stop is called still lands.
type Clock struct {
	tokens   []string
	interval time.Duration
	emit     func(string)
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func New(tokens []string, interval time.Duration, emit func(string)) *Clock {
	return &Clock{
		tokens:   tokens,
		interval: interval,
		emit:     emit,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins ticking on its own goroutine.
func (c *Clock) Start() {
	go c.run()
}

func (c *Clock) run() {
	defer close(c.done)
	for _, tok := range c.tokens {
		select {
		case <-c.stop:
			return
		default:
		}
		c.emit(tok)
		timer := time.NewTimer(c.interval)
		select {
		case <-c.stop:
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// Stop halts the clock and blocks until its goroutine has fully
// terminated. Safe to call after the clock finished on its own, and
// idempotent.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}

// Done is closed when the clock's goroutine exits, whether it ran out
// of tokens or was stopped.
func (c *Clock) Done() <-chan struct{} {
	return c.done
}
