package billing

import (
	"sync"
	"time"
)

// Recalculator states.
const (
	StateIdle        = "idle"        // no pending work; last edit changed nothing material
	StateRecomputing = "recomputing" // an edit is waiting out the debounce window
	StateSettled     = "settled"     // last recomputation committed new totals
)

// DefaultDebounce coalesces rapid successive edits (typing in a quantity
// field) into one recomputation.
const DefaultDebounce = 100 * time.Millisecond

// Snapshot is the full engine input for one editing session.
type Snapshot struct {
	Services    []ServiceLine
	Parts       []PartLine
	Adjustments Adjustments
}

// Recalculator drives recompute-on-change for a single editing session.
// Every Apply restarts the debounce timer; when it fires the totals are
// recomputed and, only if they moved beyond tolerance, handed to the commit
// callback. The guard suppresses propagation, never the computation itself.
//
// Safe for concurrent use. The commit callback runs on the timer goroutine
// and must not call back into the Recalculator.
type Recalculator struct {
	mu       sync.Mutex
	debounce time.Duration
	commit   func(Totals)

	timer   *time.Timer
	input   Snapshot
	current Totals
	state   string
	lastErr error
	closed  bool
}

// NewRecalculator builds a recalculator in the Idle state. A non-positive
// debounce falls back to DefaultDebounce. commit may be nil.
func NewRecalculator(debounce time.Duration, commit func(Totals)) *Recalculator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Recalculator{
		debounce: debounce,
		commit:   commit,
		state:    StateIdle,
	}
}

// Apply records a new input snapshot and (re)starts the debounce window.
// Calls after Close are ignored.
func (r *Recalculator) Apply(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.input = snap
	r.state = StateRecomputing
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, r.fire)
}

// Flush runs any pending recomputation immediately instead of waiting for
// the debounce timer. Used by readers that need settled totals now.
func (r *Recalculator) Flush() {
	r.mu.Lock()
	if r.closed || r.state != StateRecomputing {
		r.mu.Unlock()
		return
	}
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()
	r.fire()
}

// fire recomputes from the stored snapshot and commits when material.
func (r *Recalculator) fire() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.state != StateRecomputing {
		// A Close or Flush raced the timer; result is discarded.
		return
	}
	totals, err := Compute(r.input.Services, r.input.Parts, r.input.Adjustments)
	r.lastErr = err
	if err != nil {
		r.state = StateIdle
		return
	}
	if TotalsWithinTolerance(totals, r.current) {
		// Nothing moved beyond tolerance: suppress the write.
		r.state = StateIdle
		return
	}
	r.current = totals
	r.state = StateSettled
	if r.commit != nil {
		r.commit(totals)
	}
}

// Totals returns the last committed totals.
func (r *Recalculator) Totals() Totals {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// State returns the current state: idle, recomputing or settled.
func (r *Recalculator) State() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err returns the error from the most recent recomputation, if any.
func (r *Recalculator) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Close cancels any pending recomputation and discards in-flight results.
// The session owner calls this when editing ends, matching the
// abandoned-request guard the computation needs on teardown.
func (r *Recalculator) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.state = StateIdle
}
