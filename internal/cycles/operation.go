package cycles

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/ignite/internal/model"
)

var (
	ErrNoActiveCycle      = errors.New("cycles: no active cycle")
	ErrCycleAlreadyActive = errors.New("cycles: a cycle is already running")
	ErrUnknownOperation   = errors.New("cycles: unknown operation")
)

type OpKind string

const (
	OpCreate    OpKind = "create"
	OpInterrupt OpKind = "interrupt"
	OpComplete  OpKind = "complete"
)

type CreatePayload struct {
	ID              string
	Task            string
	DurationMinutes int
}

// Operation is one state transition. Create carries its payload; interrupt
// and complete act on the active cycle. At is the wall-clock instant stamped
// onto the cycle.
type Operation struct {
	Kind   OpKind
	At     time.Time
	Create *CreatePayload
}

func CreateOp(at time.Time, id, task string, durationMinutes int) Operation {
	return Operation{
		Kind:   OpCreate,
		At:     at,
		Create: &CreatePayload{ID: id, Task: task, DurationMinutes: durationMinutes},
	}
}

func InterruptOp(at time.Time) Operation {
	return Operation{Kind: OpInterrupt, At: at}
}

func CompleteOp(at time.Time) Operation {
	return Operation{Kind: OpComplete, At: at}
}

// Reduce applies op to state and returns the next state. The input is never
// modified; on error the returned state equals the input.
func Reduce(state State, op Operation) (State, error) {
	switch op.Kind {
	case OpCreate:
		return reduceCreate(state, op)
	case OpInterrupt:
		return reduceFinish(state, op, model.Cycle.Interrupt)
	case OpComplete:
		return reduceFinish(state, op, model.Cycle.Complete)
	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownOperation, op.Kind)
	}
}

func reduceCreate(state State, op Operation) (State, error) {
	if op.Create == nil {
		return state, fmt.Errorf("%w: missing create payload", model.ErrInvalidCycleRequest)
	}
	p := *op.Create
	task := strings.TrimSpace(p.Task)
	if err := model.ValidateRequest(task, p.DurationMinutes); err != nil {
		return state, err
	}
	if strings.TrimSpace(p.ID) == "" {
		return state, fmt.Errorf("%w: cycle id is required", model.ErrInvalidCycleRequest)
	}
	if state.indexOf(p.ID) >= 0 {
		return state, fmt.Errorf("%w: duplicate cycle id %s", model.ErrInvalidCycleRequest, p.ID)
	}
	if active, ok := state.Active(); ok {
		return state, fmt.Errorf("%w: %s", ErrCycleAlreadyActive, active.ID)
	}

	next := state.Clone()
	next.Cycles = append(next.Cycles, model.Cycle{
		ID:              p.ID,
		Task:            task,
		DurationMinutes: p.DurationMinutes,
		StartedAt:       op.At,
	})
	next.ActiveCycleID = p.ID
	return next, nil
}

func reduceFinish(state State, op Operation, finish func(model.Cycle, time.Time) (model.Cycle, error)) (State, error) {
	if state.ActiveCycleID == "" {
		return state, ErrNoActiveCycle
	}
	idx := state.indexOf(state.ActiveCycleID)
	if idx < 0 {
		return state, ErrNoActiveCycle
	}
	updated, err := finish(state.Cycles[idx], op.At)
	if err != nil {
		return state, err
	}
	next := state.Clone()
	next.Cycles[idx] = updated
	next.ActiveCycleID = ""
	return next, nil
}
