package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
)

// PeriodRepository stores periods as "timelines" in the remote API.
type PeriodRepository struct {
	client *Client
}

func NewPeriodRepository(client *Client) period.Repository {
	return &PeriodRepository{client: client}
}

func (r *PeriodRepository) GetAll(ctx context.Context) ([]period.Record, error) {
	var dtos []recordDTO
	if err := r.client.doJSON(ctx, "timelines.list", http.MethodGet, "/timelines", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]period.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := r.toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *PeriodRepository) GetByID(ctx context.Context, id string) (period.Record, error) {
	var dto recordDTO
	if err := r.client.doJSON(ctx, "timelines.get", http.MethodGet, "/timelines/"+url.PathEscape(id), nil, &dto); err != nil {
		return period.Record{}, err
	}
	rec, err := r.toDomain(dto)
	if err != nil {
		return period.Record{}, err
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return rec, nil
}

func (r *PeriodRepository) Create(ctx context.Context, data period.Payload) error {
	return r.client.doJSON(ctx, "timelines.create", http.MethodPost, "/timelines", toPayloadDTO(data), nil)
}

func (r *PeriodRepository) Update(ctx context.Context, id string, data period.Payload) error {
	return r.client.doJSON(ctx, "timelines.update", http.MethodPut, "/timelines/"+url.PathEscape(id), toPayloadDTO(data), nil)
}

func (r *PeriodRepository) toDomain(dto recordDTO) (period.Record, error) {
	start, err := parseDate(dto.StartDate, r.client.location)
	if err != nil {
		return period.Record{}, errors.Wrapf(ErrMalformedResponse, "startDate %q", dto.StartDate)
	}
	end, err := parseDate(dto.EndDate, r.client.location)
	if err != nil {
		return period.Record{}, errors.Wrapf(ErrMalformedResponse, "endDate %q", dto.EndDate)
	}
	positions := dto.Positions
	if positions == nil {
		positions = []position.Position{}
	}
	return period.Record{
		ID:        dto.id(),
		Title:     dto.Title,
		Type:      dto.Type,
		StartDate: start,
		EndDate:   end,
		Positions: positions,
	}, nil
}

func toPayloadDTO(p period.Payload) payloadDTO {
	positions := p.Positions
	if positions == nil {
		positions = []position.Position{}
	}
	return payloadDTO{
		Title:     p.Title,
		Type:      p.Type,
		Positions: positions,
		StartDate: formatDate(p.StartDate),
		EndDate:   formatDate(p.EndDate),
	}
}
