// Package debounce implements a trailing-edge debounce handle: scheduling
// always cancels the previously pending run, so at most one execution is
// pending at a time and only the last schedule within the quiet window
// fires.
package debounce

import (
	"sync"
	"time"
)

// Handle owns at most one pending timer. The zero value is not usable;
// call New.
type Handle struct {
	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// New creates an idle debounce handle.
func New() *Handle {
	return &Handle{}
}

// Schedule arms fn to run after d, cancelling any previously pending run.
// It reports whether a pending run was superseded. fn runs on the timer
// goroutine.
func (h *Handle) Schedule(d time.Duration, fn func()) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	replaced := false
	if h.timer != nil {
		h.timer.Stop()
		replaced = true
	}

	h.seq++
	seq := h.seq
	h.timer = time.AfterFunc(d, func() {
		h.mu.Lock()
		// A Stop can lose the race with an already-fired timer; the
		// sequence check makes superseded runs no-ops.
		stale := seq != h.seq
		if !stale {
			h.timer = nil
		}
		h.mu.Unlock()
		if stale {
			return
		}
		fn()
	})

	return replaced
}

// Cancel stops the pending run, if any, and reports whether one was
// pending.
func (h *Handle) Cancel() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	if h.timer == nil {
		return false
	}
	h.timer.Stop()
	h.timer = nil
	return true
}

// Pending reports whether a run is currently scheduled.
func (h *Handle) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timer != nil
}
