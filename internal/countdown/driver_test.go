package countdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/ignite/internal/cycles"
	"github.com/sandeepkv93/ignite/internal/model"
)

type countingCompleter struct {
	calls int
	err   error
}

func (c *countingCompleter) CompleteActiveCycle(context.Context) error {
	c.calls++
	return c.err
}

var start = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func fiveMinuteCycle() model.Cycle {
	return model.Cycle{ID: "c-1", Task: "Task", DurationMinutes: 5, StartedAt: start}
}

func TestDriverReportsElapsedUntilTarget(t *testing.T) {
	completer := &countingCompleter{}
	d := New(fiveMinuteCycle(), start, completer)
	ctx := context.Background()

	for _, sec := range []int{1, 2, 59, 150, 299} {
		r, err := d.Tick(ctx, start.Add(time.Duration(sec)*time.Second))
		if err != nil {
			t.Fatalf("tick %d: %v", sec, err)
		}
		if r.Elapsed != sec || r.Remaining != 300-sec || r.Done {
			t.Fatalf("tick %d: unexpected reading %+v", sec, r)
		}
	}
	if completer.calls != 0 {
		t.Fatalf("completed early: %d calls", completer.calls)
	}
}

func TestDriverCompletesExactlyOnce(t *testing.T) {
	completer := &countingCompleter{}
	d := New(fiveMinuteCycle(), start, completer)
	ctx := context.Background()

	for _, sec := range []int{300, 301, 360, 9000} {
		r, err := d.Tick(ctx, start.Add(time.Duration(sec)*time.Second))
		if err != nil {
			t.Fatalf("tick %d: %v", sec, err)
		}
		if r.Elapsed != 300 || r.Remaining != 0 || !r.Done {
			t.Fatalf("tick %d: unexpected reading %+v", sec, r)
		}
	}
	if completer.calls != 1 {
		t.Fatalf("expected exactly one completion, got %d", completer.calls)
	}
	if !d.Stopped() {
		t.Fatal("expected driver to stop after completion")
	}
}

func TestDriverResumesFromElapsedTime(t *testing.T) {
	completer := &countingCompleter{}
	d := New(fiveMinuteCycle(), start.Add(120*time.Second), completer)
	r := d.Reading()
	if r.Elapsed != 120 || r.Remaining != 180 || r.Clock() != "03:00" {
		t.Fatalf("expected resumed reading, got %+v (%s)", r, r.Clock())
	}
}

func TestDriverCompletesOverdueCycleOnFirstTick(t *testing.T) {
	completer := &countingCompleter{}
	now := start.Add(400 * time.Second)
	d := New(fiveMinuteCycle(), now, completer)
	if r := d.Reading(); r.Remaining != 0 || r.Elapsed != 300 {
		t.Fatalf("overdue reading must clamp to target, got %+v", r)
	}

	r, err := d.Tick(context.Background(), now)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !r.Done || completer.calls != 1 {
		t.Fatalf("expected completion on first tick, reading=%+v calls=%d", r, completer.calls)
	}
}

func TestDriverTruncatesToWholeSeconds(t *testing.T) {
	d := New(fiveMinuteCycle(), start, nil)
	r, err := d.Tick(context.Background(), start.Add(2999*time.Millisecond))
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if r.Elapsed != 2 {
		t.Fatalf("expected 2 whole seconds, got %d", r.Elapsed)
	}
}

func TestDriverClampsClockSkew(t *testing.T) {
	d := New(fiveMinuteCycle(), start.Add(-time.Minute), nil)
	if r := d.Reading(); r.Elapsed != 0 || r.Remaining != 300 {
		t.Fatalf("expected clock before start to clamp to zero, got %+v", r)
	}
}

func TestDriverAbsorbsNoActiveCycle(t *testing.T) {
	completer := &countingCompleter{err: cycles.ErrNoActiveCycle}
	d := New(fiveMinuteCycle(), start, completer)
	if _, err := d.Tick(context.Background(), start.Add(300*time.Second)); err != nil {
		t.Fatalf("expected ErrNoActiveCycle to be absorbed, got %v", err)
	}

	boom := errors.New("boom")
	completer = &countingCompleter{err: boom}
	d = New(fiveMinuteCycle(), start, completer)
	if _, err := d.Tick(context.Background(), start.Add(300*time.Second)); !errors.Is(err, boom) {
		t.Fatalf("expected completer error to surface, got %v", err)
	}
}

func TestReadingProgressAndClock(t *testing.T) {
	r := Reading{Elapsed: 150, Target: 300, Remaining: 150}
	if r.Progress() != 0.5 || r.Clock() != "02:30" {
		t.Fatalf("unexpected progress/clock: %v %s", r.Progress(), r.Clock())
	}
	if (Reading{}).Progress() != 0 || (Reading{}).Clock() != "00:00" {
		t.Fatal("empty reading must render zero")
	}
}

func TestRemainingAndFormatClock(t *testing.T) {
	c := fiveMinuteCycle()
	if got := Remaining(nil, start); got != 0 {
		t.Fatalf("no active cycle must have zero remaining, got %d", got)
	}
	if got := Remaining(&c, start.Add(61*time.Second)); got != 239 {
		t.Fatalf("remaining = %d, want 239", got)
	}
	if got := Remaining(&c, start.Add(time.Hour)); got != 0 {
		t.Fatalf("overdue remaining = %d, want 0", got)
	}

	cases := map[int]string{0: "00:00", 5: "00:05", 65: "01:05", 1500: "25:00", 3600: "60:00", -3: "00:00"}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
