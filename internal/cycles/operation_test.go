package cycles

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/ignite/internal/model"
)

var baseTime = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func TestReduceCreateSetsActiveCycle(t *testing.T) {
	next, err := Reduce(State{}, CreateOp(baseTime, "c-1", "  Write report ", 25))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if next.ActiveCycleID != "c-1" || len(next.Cycles) != 1 {
		t.Fatalf("unexpected state after create: %+v", next)
	}
	got := next.Cycles[0]
	if got.Task != "Write report" || got.DurationMinutes != 25 || !got.StartedAt.Equal(baseTime) {
		t.Fatalf("unexpected cycle: %+v", got)
	}
	if got.IsTerminal() {
		t.Fatal("new cycle must not be terminal")
	}
}

func TestReduceCreateRejectsInvalidRequests(t *testing.T) {
	cases := []Operation{
		CreateOp(baseTime, "c-1", "", 25),
		CreateOp(baseTime, "c-1", "Task", 0),
		CreateOp(baseTime, "c-1", "Task", 61),
		CreateOp(baseTime, "", "Task", 25),
		{Kind: OpCreate, At: baseTime},
	}
	for _, op := range cases {
		next, err := Reduce(State{}, op)
		if !errors.Is(err, model.ErrInvalidCycleRequest) {
			t.Fatalf("op %+v: expected ErrInvalidCycleRequest, got %v", op, err)
		}
		if len(next.Cycles) != 0 || next.ActiveCycleID != "" {
			t.Fatalf("op %+v: state changed on failure: %+v", op, next)
		}
	}
}

func TestReduceCreateWhileRunningIsRejected(t *testing.T) {
	state, err := Reduce(State{}, CreateOp(baseTime, "c-1", "First", 25))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	next, err := Reduce(state, CreateOp(baseTime.Add(time.Minute), "c-2", "Second", 25))
	if !errors.Is(err, ErrCycleAlreadyActive) {
		t.Fatalf("expected ErrCycleAlreadyActive, got %v", err)
	}
	if !reflect.DeepEqual(next, state) {
		t.Fatalf("state changed on rejected create: %+v", next)
	}

	if _, err := Reduce(state, CreateOp(baseTime, "c-1", "Dup", 25)); !errors.Is(err, model.ErrInvalidCycleRequest) {
		t.Fatalf("expected duplicate id to be rejected, got %v", err)
	}
}

func TestReduceInterruptAndComplete(t *testing.T) {
	cases := []struct {
		name   string
		op     Operation
		status model.CycleStatus
	}{
		{"interrupt", InterruptOp(baseTime.Add(3 * time.Minute)), model.CycleStatusInterrupted},
		{"complete", CompleteOp(baseTime.Add(25 * time.Minute)), model.CycleStatusCompleted},
	}
	for _, tc := range cases {
		state, err := Reduce(State{}, CreateOp(baseTime, "c-1", "Task", 25))
		if err != nil {
			t.Fatalf("%s: create: %v", tc.name, err)
		}
		next, err := Reduce(state, tc.op)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if next.ActiveCycleID != "" {
			t.Fatalf("%s: expected active id cleared, got %q", tc.name, next.ActiveCycleID)
		}
		if next.Cycles[0].Status() != tc.status {
			t.Fatalf("%s: status = %s, want %s", tc.name, next.Cycles[0].Status(), tc.status)
		}
		if state.Cycles[0].IsTerminal() {
			t.Fatalf("%s: reduce mutated its input", tc.name)
		}
	}
}

func TestReduceWithoutActiveCycleIsNoop(t *testing.T) {
	finished, err := Reduce(State{}, CreateOp(baseTime, "c-1", "Task", 25))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	finished, err = Reduce(finished, CompleteOp(baseTime.Add(25*time.Minute)))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	states := map[string]State{
		"empty":    {},
		"finished": finished,
		"dangling": {Cycles: finished.Cycles, ActiveCycleID: "missing"},
	}
	for name, state := range states {
		for _, op := range []Operation{InterruptOp(baseTime), CompleteOp(baseTime)} {
			next, err := Reduce(state, op)
			if !errors.Is(err, ErrNoActiveCycle) {
				t.Fatalf("%s/%s: expected ErrNoActiveCycle, got %v", name, op.Kind, err)
			}
			if !reflect.DeepEqual(next, state) {
				t.Fatalf("%s/%s: state changed: %+v", name, op.Kind, next)
			}
		}
	}
}

func TestReduceUpdatesFirstCycleInHistory(t *testing.T) {
	// The active cycle sitting at index 0 must be updated like any other.
	state, err := Reduce(State{}, CreateOp(baseTime, "first", "Task", 5))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	next, err := Reduce(state, InterruptOp(baseTime.Add(time.Minute)))
	if err != nil {
		t.Fatalf("interrupt: %v", err)
	}
	if next.Cycles[0].InterruptedAt == nil {
		t.Fatalf("expected first cycle to be interrupted: %+v", next.Cycles[0])
	}
}

func TestReduceUnknownOperation(t *testing.T) {
	if _, err := Reduce(State{}, Operation{Kind: OpKind("pause")}); !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}
