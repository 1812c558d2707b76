package cycles

import (
	"encoding/json"
	"fmt"

	"github.com/sandeepkv93/ignite/internal/model"
)

// State is the persisted aggregate: every cycle ever created, in creation
// order, and the id of the running one ("" when none).
type State struct {
	Cycles        []model.Cycle
	ActiveCycleID string
}

type stateSnapshot struct {
	Cycles        []model.Cycle `json:"cycles"`
	ActiveCycleID *string       `json:"activeCycleId"`
}

func (s State) MarshalJSON() ([]byte, error) {
	snap := stateSnapshot{Cycles: s.Cycles}
	if snap.Cycles == nil {
		snap.Cycles = []model.Cycle{}
	}
	if s.ActiveCycleID != "" {
		id := s.ActiveCycleID
		snap.ActiveCycleID = &id
	}
	return json.Marshal(snap)
}

func (s *State) UnmarshalJSON(raw []byte) error {
	var snap stateSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	s.Cycles = snap.Cycles
	s.ActiveCycleID = ""
	if snap.ActiveCycleID != nil {
		s.ActiveCycleID = *snap.ActiveCycleID
	}
	return nil
}

func EncodeState(s State) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeState parses a snapshot and repairs a dangling active id. Snapshots
// holding an invalid cycle are rejected as a whole.
func DecodeState(raw []byte) (State, error) {
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, fmt.Errorf("decode cycles state: %w", err)
	}
	seen := make(map[string]bool, len(s.Cycles))
	for _, c := range s.Cycles {
		if err := c.Validate(); err != nil {
			return State{}, fmt.Errorf("decode cycles state: %w", err)
		}
		if seen[c.ID] {
			return State{}, fmt.Errorf("decode cycles state: duplicate cycle id %s", c.ID)
		}
		seen[c.ID] = true
	}
	if s.ActiveCycleID != "" {
		if c, ok := s.find(s.ActiveCycleID); !ok || c.IsTerminal() {
			s.ActiveCycleID = ""
		}
	}
	return s, nil
}

func (s State) Active() (model.Cycle, bool) {
	if s.ActiveCycleID == "" {
		return model.Cycle{}, false
	}
	c, ok := s.find(s.ActiveCycleID)
	if !ok || c.IsTerminal() {
		return model.Cycle{}, false
	}
	return c, true
}

func (s State) Clone() State {
	out := State{ActiveCycleID: s.ActiveCycleID}
	if s.Cycles != nil {
		out.Cycles = make([]model.Cycle, len(s.Cycles))
		for i, c := range s.Cycles {
			out.Cycles[i] = cloneCycle(c)
		}
	}
	return out
}

func (s State) indexOf(id string) int {
	for i := range s.Cycles {
		if s.Cycles[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) find(id string) (model.Cycle, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Cycle{}, false
	}
	return s.Cycles[idx], true
}

func cloneCycle(c model.Cycle) model.Cycle {
	if c.InterruptedAt != nil {
		at := *c.InterruptedAt
		c.InterruptedAt = &at
	}
	if c.CompletedAt != nil {
		at := *c.CompletedAt
		c.CompletedAt = &at
	}
	return c
}
