package remote

import (
	"context"
	"net/http"

	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
)

type PositionRepository struct {
	client *Client
}

func NewPositionRepository(client *Client) position.Repository {
	return &PositionRepository{client: client}
}

func (r *PositionRepository) GetAll(ctx context.Context) ([]position.Position, error) {
	var out []position.Position
	if err := r.client.doJSON(ctx, "positions.list", http.MethodGet, "/positions", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []position.Position{}
	}
	return out, nil
}
