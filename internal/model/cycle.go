package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 60
)

var (
	ErrInvalidCycleRequest = errors.New("model: invalid cycle request")
	ErrCycleTerminal       = errors.New("model: cycle already finished")
	ErrInvalidCycle        = errors.New("model: invalid cycle")
)

type CycleStatus string

const (
	CycleStatusRunning     CycleStatus = "running"
	CycleStatusCompleted   CycleStatus = "completed"
	CycleStatusInterrupted CycleStatus = "interrupted"
)

func (s CycleStatus) IsTerminal() bool {
	return s == CycleStatusCompleted || s == CycleStatusInterrupted
}

type Cycle struct {
	ID              string     `json:"id"`
	Task            string     `json:"task"`
	DurationMinutes int        `json:"taskMinutesAmount"`
	StartedAt       time.Time  `json:"startDate"`
	InterruptedAt   *time.Time `json:"interruptedDate,omitempty"`
	CompletedAt     *time.Time `json:"completedDate,omitempty"`
}

// ValidateRequest checks the inputs accepted by the new-cycle form.
func ValidateRequest(task string, durationMinutes int) error {
	if strings.TrimSpace(task) == "" {
		return fmt.Errorf("%w: task is required", ErrInvalidCycleRequest)
	}
	if durationMinutes < MinDurationMinutes || durationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes, got %d",
			ErrInvalidCycleRequest, MinDurationMinutes, MaxDurationMinutes, durationMinutes)
	}
	return nil
}

func (c Cycle) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidCycle)
	}
	if err := ValidateRequest(c.Task, c.DurationMinutes); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCycle, err)
	}
	if c.StartedAt.IsZero() {
		return fmt.Errorf("%w: started_at is required", ErrInvalidCycle)
	}
	if c.InterruptedAt != nil && c.CompletedAt != nil {
		return fmt.Errorf("%w: cycle cannot be both interrupted and completed", ErrInvalidCycle)
	}
	return nil
}

func (c Cycle) Status() CycleStatus {
	switch {
	case c.CompletedAt != nil:
		return CycleStatusCompleted
	case c.InterruptedAt != nil:
		return CycleStatusInterrupted
	default:
		return CycleStatusRunning
	}
}

func (c Cycle) IsTerminal() bool {
	return c.Status().IsTerminal()
}

func (c Cycle) TargetSeconds() int {
	return c.DurationMinutes * 60
}

// Interrupt returns a copy of c stopped by the user at the given instant.
func (c Cycle) Interrupt(at time.Time) (Cycle, error) {
	if c.IsTerminal() {
		return c, fmt.Errorf("%w: %s is %s", ErrCycleTerminal, c.ID, c.Status())
	}
	stamp := at
	c.InterruptedAt = &stamp
	return c, nil
}

// Complete returns a copy of c whose countdown reached zero at the given instant.
func (c Cycle) Complete(at time.Time) (Cycle, error) {
	if c.IsTerminal() {
		return c, fmt.Errorf("%w: %s is %s", ErrCycleTerminal, c.ID, c.Status())
	}
	stamp := at
	c.CompletedAt = &stamp
	return c, nil
}
