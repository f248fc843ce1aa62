package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
	"github.com/iota-uz/iota-periods/pkg/composables"
	"github.com/iota-uz/iota-periods/pkg/eventbus"
)

type PositionService struct {
	repo      position.Repository
	publisher eventbus.EventBus
}

func NewPositionService(repo position.Repository, publisher eventbus.EventBus) *PositionService {
	return &PositionService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *PositionService) GetAll(ctx context.Context) ([]position.Position, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list positions")
	}
	return items, nil
}

// Load fetches the positions reference list and reports each step on the
// event bus, where PositionsStore picks them up.
func (s *PositionService) Load(ctx context.Context) ([]position.Position, error) {
	s.publisher.Publish(&position.FetchInitEvent{})
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("failed to load positions")
		s.publisher.Publish(&position.FetchFailureEvent{Error: FailureMessage(ctx, err)})
		return nil, errors.Wrap(err, "load positions")
	}
	s.publisher.Publish(&position.FetchSuccessEvent{Positions: items})
	return items, nil
}
