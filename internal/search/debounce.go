package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay applied to search-as-you-type input.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid calls into a single delayed invocation.
// Scheduling a new call cancels the pending one: only the most recently
// scheduled function runs (last-write-wins).
type Debouncer struct {
	timer *time.Timer
	delay time.Duration
	mu    sync.Mutex
}

// NewDebouncer creates a debouncer with the given delay, defaulting to
// DefaultDebounce when the delay is not positive.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to run after the delay, cancelling any pending
// invocation.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ResultGuard orders asynchronous results. Each request takes a sequence
// number from Issue; Apply accepts a result only if no newer result has been
// applied, so a slow stale response can never overwrite a fresh one.
type ResultGuard struct {
	issued  uint64
	applied uint64
	mu      sync.Mutex
}

// Issue reserves the next sequence number for an outgoing request.
func (g *ResultGuard) Issue() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.issued++
	return g.issued
}

// Apply reports whether the result for the given sequence number should be
// used, recording it as the latest applied when accepted.
func (g *ResultGuard) Apply(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if seq <= g.applied {
		return false
	}
	g.applied = seq
	return true
}
