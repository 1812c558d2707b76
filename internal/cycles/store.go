package cycles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/ignite/internal/model"
	"github.com/sandeepkv93/ignite/internal/storage"
)

var ErrStorageUnavailable = errors.New("cycles: storage unavailable")

// Store owns the canonical cycle history. Every successful mutation is
// written to the slot as a full snapshot. A Store is meant to be driven from
// a single goroutine.
type Store struct {
	slot      storage.Slot
	state     State
	now       func() time.Time
	newID     func() string
	logger    *log.Logger
	degraded  bool
	listeners map[int]func(State)
	nextSubID int
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open rehydrates a Store from slot. A missing or unreadable snapshot yields
// an empty history; a failing slot additionally switches the store to
// in-memory operation. A nil slot is treated the same way.
func Open(ctx context.Context, slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:      slot,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    log.New(io.Discard, "", 0),
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if slot == nil {
		s.degraded = true
		return s
	}

	raw, err := slot.Read(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s
	case err != nil:
		s.degraded = true
		s.logger.Printf("cycles: read snapshot failed, continuing in memory: %v", err)
		return s
	}
	state, err := DecodeState(raw)
	if err != nil {
		s.logger.Printf("cycles: discarding unreadable snapshot: %v", err)
		return s
	}
	s.state = state
	return s
}

func (s *Store) CreateCycle(ctx context.Context, task string, durationMinutes int) (model.Cycle, error) {
	op := CreateOp(s.clock(), s.newID(), strings.TrimSpace(task), durationMinutes)
	next, err := s.Dispatch(ctx, op)
	if err != nil && !errors.Is(err, ErrStorageUnavailable) {
		return model.Cycle{}, err
	}
	created, _ := next.find(op.Create.ID)
	return created, err
}

func (s *Store) InterruptActiveCycle(ctx context.Context) error {
	_, err := s.Dispatch(ctx, InterruptOp(s.clock()))
	return err
}

func (s *Store) CompleteActiveCycle(ctx context.Context) error {
	_, err := s.Dispatch(ctx, CompleteOp(s.clock()))
	return err
}

// Dispatch reduces op into the current state and persists the result. When
// only the write fails the new state is kept and the returned error wraps
// ErrStorageUnavailable.
func (s *Store) Dispatch(ctx context.Context, op Operation) (State, error) {
	next, err := Reduce(s.state, op)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state = next
	persistErr := s.persist(ctx)
	s.notify()
	return s.state.Clone(), persistErr
}

func (s *Store) ActiveCycle() (model.Cycle, bool) {
	c, ok := s.state.Active()
	if !ok {
		return model.Cycle{}, false
	}
	return cloneCycle(c), true
}

func (s *Store) History() []model.Cycle {
	return s.state.Clone().Cycles
}

func (s *Store) Snapshot() State {
	return s.state.Clone()
}

// Degraded reports whether the store stopped writing to durable storage.
func (s *Store) Degraded() bool {
	return s.degraded
}

// Subscribe registers fn to run after every successful mutation. The
// returned func removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store) persist(ctx context.Context) error {
	if s.degraded {
		return nil
	}
	payload, err := EncodeState(s.state)
	if err != nil {
		return fmt.Errorf("encode cycles state: %w", err)
	}
	if err := s.slot.Write(ctx, payload); err != nil {
		s.degraded = true
		s.logger.Printf("cycles: write snapshot failed, continuing in memory: %v", err)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn(s.state.Clone())
	}
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}
