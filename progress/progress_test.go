// SPDX-License-Identifier: EPL-2.0

package progress

import (
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mtx    sync.Mutex
	values []float64
}

func (r *recorder) Report(p float64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.values = append(r.values, p)
}

func (r *recorder) snapshot() []float64 {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.values)
}

func TestTracker_KnownDuration(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	tr := NewTracker(rec)

	tr.Start(10 * time.Second)
	for ms := 0; ms <= 10_000; ms += 25 {
		tr.Position(time.Duration(ms) * time.Millisecond)
	}
	tr.Finish()

	got := rec.snapshot()
	if got[0] != 0 {
		t.Errorf("first value = %v, want 0", got[0])
	}
	if got[len(got)-1] != 1 {
		t.Errorf("last value = %v, want 1", got[len(got)-1])
	}
	if len(got) != 101 {
		t.Errorf("reported %d values, want 101 (0..99 plus terminal)", len(got))
	}

	ones := 0
	for i, v := range got {
		if i > 0 && v < got[i-1] {
			t.Fatalf("value %d = %v decreased from %v", i, v, got[i-1])
		}
		if v < 0 || v > 1 {
			t.Fatalf("value %d = %v out of range", i, v)
		}
		if v == 1 {
			ones++
		}
	}
	if ones != 1 {
		t.Errorf("1.0 reported %d times, want exactly once", ones)
	}
}

func TestTracker_UnknownDuration(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	tr := NewTracker(rec)

	tr.Start(0)
	tr.Position(time.Second)
	tr.Position(time.Hour)
	tr.Finish()

	if got := rec.snapshot(); !slices.Equal(got, []float64{0, 1}) {
		t.Errorf("values = %v, want [0 1]", got)
	}
}

func TestTracker_NeverDecreases(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	tr := NewTracker(rec)

	tr.Start(time.Second)
	tr.Position(500 * time.Millisecond)
	tr.Position(200 * time.Millisecond)
	tr.Position(-time.Second)
	tr.Position(2 * time.Second)
	tr.Position(3 * time.Second)

	got := rec.snapshot()
	if !slices.Equal(got, []float64{0, 0.5, 0.99}) {
		t.Errorf("values = %v, want [0 0.5 0.99]", got)
	}
	if tr.Percent() != 99 {
		t.Errorf("Percent() = %d, want 99", tr.Percent())
	}
}

func TestTracker_NoTerminalWithoutFinish(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	tr := NewTracker(rec)

	tr.Start(time.Second)
	tr.Position(time.Second)

	for _, v := range rec.snapshot() {
		if v == 1 {
			t.Fatal("1.0 reported before Finish")
		}
	}

	tr.Finish()
	tr.Finish()
	tr.Position(time.Second)

	got := rec.snapshot()
	if got[len(got)-1] != 1 || got[len(got)-2] == 1 {
		t.Errorf("values = %v, want exactly one trailing 1.0", got)
	}
}

func TestTracker_NilSafe(t *testing.T) {
	t.Parallel()

	var tr *Tracker
	tr.Start(time.Second)
	tr.Position(time.Second)
	tr.Finish()

	if tr.Percent() != -1 {
		t.Errorf("Percent() = %d, want -1", tr.Percent())
	}

	// nil reporter
	NewTracker(nil).Start(time.Second)
}

func TestAsync_DeliversLastValue(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	block := make(chan struct{})
	slow := Func(func(p float64) {
		<-block
		rec.Report(p)
	})

	a := NewAsync(slow)
	for i := range 100 {
		a.Report(float64(i) / 100)
	}
	a.Report(1)
	close(block)
	a.Close()

	got := rec.snapshot()
	if len(got) == 0 || got[len(got)-1] != 1 {
		t.Fatalf("values = %v, want last value 1", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("values out of order: %v", got)
		}
	}
}

func TestAsync_ReportNeverBlocks(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	a := NewAsync(Func(func(float64) { <-block }))

	done := make(chan struct{})
	go func() {
		for i := range 1000 {
			a.Report(float64(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Report blocked behind a slow callback")
	}

	close(block)
	a.Close()
	a.Close()
	a.Report(2)
}

func ExampleTracker() {
	tr := NewTracker(Func(func(p float64) { fmt.Println(p) }))

	tr.Start(4 * time.Second)
	tr.Position(time.Second)
	tr.Position(time.Second + time.Millisecond)
	tr.Finish()
	// Output:
	// 0
	// 0.25
	// 1
}
