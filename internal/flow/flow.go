// Package flow tracks one in-flight request per flow instance. A second
// submission while one is pending is rejected, and a result is applied only
// if its originating request is still the current one.
package flow

import "sync"

// Tracker is the submission state of a single flow instance.
// The zero value is an idle tracker.
type Tracker struct {
	mu       sync.Mutex
	seq      uint64
	inFlight bool
}

// Begin starts a new request. It returns the request's sequence number and
// false when another request is already in flight.
func (t *Tracker) Begin() (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inFlight {
		return 0, false
	}
	t.seq++
	t.inFlight = true
	return t.seq, true
}

// Finish ends the request identified by seq. It reports whether the request
// is still the current one; a stale result must be discarded by the caller.
func (t *Tracker) Finish(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.inFlight || seq != t.seq {
		return false
	}
	t.inFlight = false
	return true
}

// Reset abandons any in-flight request. Its eventual result will fail the
// Finish check and be discarded.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inFlight {
		t.seq++
		t.inFlight = false
	}
}

// Busy reports whether a request is currently in flight.
func (t *Tracker) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight
}
