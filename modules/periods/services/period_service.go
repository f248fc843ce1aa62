package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/pkg/eventbus"
)

type PeriodService struct {
	repo      period.Repository
	publisher eventbus.EventBus
}

func NewPeriodService(repo period.Repository, publisher eventbus.EventBus) *PeriodService {
	return &PeriodService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *PeriodService) GetAll(ctx context.Context) ([]period.Record, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list periods")
	}
	return items, nil
}

func (s *PeriodService) GetByID(ctx context.Context, id string) (period.Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return period.Record{}, errors.Wrapf(err, "get period %s", id)
	}
	return rec, nil
}

func (s *PeriodService) Create(ctx context.Context, data period.Payload) error {
	if err := s.repo.Create(ctx, data); err != nil {
		return errors.Wrap(err, "create period")
	}
	s.publisher.Publish(&period.CreatedEvent{Data: data})
	return nil
}

func (s *PeriodService) Update(ctx context.Context, id string, data period.Payload) error {
	if err := s.repo.Update(ctx, id, data); err != nil {
		return errors.Wrapf(err, "update period %s", id)
	}
	s.publisher.Publish(&period.UpdatedEvent{ID: id, Data: data})
	return nil
}
