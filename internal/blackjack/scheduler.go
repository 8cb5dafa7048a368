package blackjack

import (
	"time"

	"github.com/coder/quartz"
)

// task is a continuation scheduled for a specific round. Tasks run in the
// order they were scheduled, each no earlier than its own delay.
type task struct {
	round     uint64
	name      string
	fn        func()
	ready     bool
	cancelled bool
	timer     *quartz.Timer
}

// schedule queues fn to run after delay on behalf of the current round.
// Must be called with e.mu held.
func (e *Engine) schedule(name string, delay time.Duration, fn func()) {
	t := &task{round: e.round, name: name, fn: fn}
	e.queue = append(e.queue, t)

	if delay <= 0 {
		t.ready = true
		return
	}

	t.timer = e.clock.AfterFunc(delay, func() {
		e.mu.Lock()
		defer e.unlock()
		if t.cancelled {
			return
		}
		t.ready = true
	})
}

// drain runs every ready task at the head of the queue. A task whose round
// has been superseded is dropped without running. Must be called with
// e.mu held.
func (e *Engine) drain() {
	if e.draining {
		return
	}
	e.draining = true
	defer func() { e.draining = false }()

	for len(e.queue) > 0 && e.queue[0].ready {
		t := e.queue[0]
		e.queue = e.queue[1:]

		if t.cancelled || t.round != e.round {
			e.logger.Debug("Dropping stale continuation", "task", t.name, "scheduled_round", t.round, "round", e.round)
			continue
		}

		e.logger.Debug("Running continuation", "task", t.name, "round", e.roundID)
		t.fn()
	}
}

// cancelPending stops every pending timer and empties the queue. Must be
// called with e.mu held.
func (e *Engine) cancelPending() {
	for _, t := range e.queue {
		t.cancelled = true
		if t.timer != nil {
			t.timer.Stop()
		}
	}
	e.queue = nil
}

// Pending returns the number of continuations waiting to run
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// unlock drains ready continuations and releases the engine lock
func (e *Engine) unlock() {
	e.drain()
	e.mu.Unlock()
}
