// Package countdown turns wall-clock time into elapsed/remaining seconds for
// the running cycle and signals completion once.
package countdown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/ignite/internal/cycles"
	"github.com/sandeepkv93/ignite/internal/model"
)

const DefaultInterval = time.Second

// Completer is the single mutation the driver is allowed to invoke.
type Completer interface {
	CompleteActiveCycle(ctx context.Context) error
}

type Reading struct {
	CycleID   string
	Elapsed   int
	Target    int
	Remaining int
	Done      bool
}

// Clock renders the remaining time as MM:SS.
func (r Reading) Clock() string {
	return FormatClock(r.Remaining)
}

func (r Reading) Progress() float64 {
	if r.Target <= 0 {
		return 0
	}
	p := float64(r.Elapsed) / float64(r.Target)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// Driver is bound to one running cycle. Create a new Driver whenever the
// active cycle changes.
type Driver struct {
	cycleID   string
	startedAt time.Time
	target    int
	elapsed   int
	done      bool
	completer Completer
}

// New starts from the time already elapsed since the cycle began, so a
// restart resumes where the countdown left off.
func New(c model.Cycle, now time.Time, completer Completer) *Driver {
	d := &Driver{
		cycleID:   c.ID,
		startedAt: c.StartedAt,
		target:    c.TargetSeconds(),
		completer: completer,
	}
	d.elapsed = d.clamp(ElapsedSeconds(c.StartedAt, now))
	return d
}

func (d *Driver) CycleID() string {
	return d.cycleID
}

// Stopped reports whether the completion signal has been sent.
func (d *Driver) Stopped() bool {
	return d.done
}

func (d *Driver) Reading() Reading {
	return Reading{
		CycleID:   d.cycleID,
		Elapsed:   d.elapsed,
		Target:    d.target,
		Remaining: d.target - d.elapsed,
		Done:      d.done,
	}
}

// Tick recomputes elapsed time at now. The first tick at or past the target
// completes the cycle; every later tick returns the final reading unchanged.
func (d *Driver) Tick(ctx context.Context, now time.Time) (Reading, error) {
	if d.done {
		return d.Reading(), nil
	}
	elapsed := ElapsedSeconds(d.startedAt, now)
	if elapsed < d.target {
		d.elapsed = d.clamp(elapsed)
		return d.Reading(), nil
	}

	d.elapsed = d.target
	d.done = true
	if d.completer == nil {
		return d.Reading(), nil
	}
	if err := d.completer.CompleteActiveCycle(ctx); err != nil && !errors.Is(err, cycles.ErrNoActiveCycle) {
		return d.Reading(), fmt.Errorf("complete cycle %s: %w", d.cycleID, err)
	}
	return d.Reading(), nil
}

func (d *Driver) clamp(elapsed int) int {
	if elapsed < 0 {
		return 0
	}
	if elapsed > d.target {
		return d.target
	}
	return elapsed
}

// ElapsedSeconds is the whole number of seconds from start to now.
func ElapsedSeconds(start, now time.Time) int {
	return int(now.Sub(start) / time.Second)
}

// Remaining returns the seconds left on c at now, zero when c is nil.
func Remaining(c *model.Cycle, now time.Time) int {
	if c == nil {
		return 0
	}
	left := c.TargetSeconds() - ElapsedSeconds(c.StartedAt, now)
	if left < 0 {
		return 0
	}
	if left > c.TargetSeconds() {
		return c.TargetSeconds()
	}
	return left
}

func FormatClock(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}
