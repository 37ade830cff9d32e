// SPDX-License-Identifier: EPL-2.0

// Package progress turns stream positions into normalized conversion
// progress callbacks.
package progress

import (
	"sync"
	"time"
)

// Reporter receives progress values in [0, 1].
type Reporter interface {
	Report(p float64)
}

// Func adapts a function to Reporter.
type Func func(p float64)

func (f Func) Report(p float64) { f(p) }

// maxIntermediate keeps intermediate values below the terminal 1.0.
const maxIntermediate = 99

// Tracker reports progress for one conversion run. Values never decrease,
// repeat only when the integer percentage changes, and 1.0 is reported once,
// by Finish. A nil *Tracker ignores every call.
type Tracker struct {
	r        Reporter
	total    time.Duration
	percent  int
	started  bool
	finished bool
}

// NewTracker returns a tracker delivering to r; r may be nil.
func NewTracker(r Reporter) *Tracker {
	return &Tracker{r: r, percent: -1}
}

// Start reports 0.0. total is the stream duration, 0 when unknown; with an
// unknown total, Position reports nothing.
func (t *Tracker) Start(total time.Duration) {
	if t == nil || t.started {
		return
	}
	t.started = true
	t.total = total
	t.emit(0, 0)
}

// Position reports pos/total when the integer percentage advanced.
func (t *Tracker) Position(pos time.Duration) {
	if t == nil || !t.started || t.finished || t.total <= 0 {
		return
	}

	p := min(max(float64(pos)/float64(t.total), 0), 1)
	pct := min(int(p*100), maxIntermediate)
	if pct <= t.percent {
		return
	}

	t.emit(pct, min(p, float64(maxIntermediate)/100))
}

// Finish reports the terminal 1.0. Further calls do nothing.
func (t *Tracker) Finish() {
	if t == nil || t.finished {
		return
	}
	t.finished = true
	t.emit(100, 1)
}

// Percent returns the last reported integer percentage, -1 before Start.
func (t *Tracker) Percent() int {
	if t == nil {
		return -1
	}
	return t.percent
}

func (t *Tracker) emit(pct int, p float64) {
	t.percent = pct
	if t.r != nil {
		t.r.Report(p)
	}
}

// Async forwards values to a Reporter on its own goroutine so a slow
// callback never stalls the caller. Pending values coalesce: only the most
// recent undelivered value is kept, so delivery order is preserved and the
// last value reported before Close is always delivered.
type Async struct {
	ch   chan float64
	done chan struct{}

	mtx    *sync.Mutex
	closed bool
}

// NewAsync starts delivering to r.
func NewAsync(r Reporter) *Async {
	a := &Async{
		ch:   make(chan float64, 1),
		done: make(chan struct{}),
		mtx:  &sync.Mutex{},
	}

	go func() {
		defer close(a.done)
		for p := range a.ch {
			r.Report(p)
		}
	}()

	return a
}

// Report queues p without blocking. Values reported after Close are
// dropped.
func (a *Async) Report(p float64) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.closed {
		return
	}

	for {
		select {
		case a.ch <- p:
			return
		default:
		}

		// Replace the stale value nobody has picked up yet.
		select {
		case <-a.ch:
		default:
		}
	}
}

// Close delivers the pending value, if any, and waits for the delivery
// goroutine to exit.
func (a *Async) Close() {
	a.mtx.Lock()
	if !a.closed {
		a.closed = true
		close(a.ch)
	}
	a.mtx.Unlock()

	<-a.done
}
