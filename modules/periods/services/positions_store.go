package services

import (
	"sync"

	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
	"github.com/iota-uz/iota-periods/pkg/eventbus"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

type Snapshot struct {
	Phase     Phase
	Positions []position.Position
	// Error is the text of the last failed load; cleared by the next success.
	Error string
}

// PositionsStore is the application-wide positions list. It is fed by the
// fetch events PositionService publishes and outlives any single form.
type PositionsStore struct {
	mu    sync.RWMutex
	state Snapshot
}

func NewPositionsStore(bus eventbus.EventBus) *PositionsStore {
	s := &PositionsStore{state: Snapshot{Phase: PhaseIdle}}
	bus.Subscribe(s.onInit)
	bus.Subscribe(s.onSuccess)
	bus.Subscribe(s.onFailure)
	return s
}

func (s *PositionsStore) onInit(*position.FetchInitEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Phase = PhaseLoading
}

func (s *PositionsStore) onSuccess(e *position.FetchSuccessEvent) {
	items := make([]position.Position, len(e.Positions))
	copy(items, e.Positions)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Snapshot{Phase: PhaseReady, Positions: items}
}

// onFailure keeps the previously loaded positions.
func (s *PositionsStore) onFailure(e *position.FetchFailureEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Phase = PhaseFailed
	s.state.Error = e.Error
}

func (s *PositionsStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	out.Positions = make([]position.Position, len(s.state.Positions))
	copy(out.Positions, s.state.Positions)
	return out
}

func (s *PositionsStore) Positions() []position.Position {
	return s.Snapshot().Positions
}
