package period

import "context"

type Repository interface {
	GetAll(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, data Payload) error
	Update(ctx context.Context, id string, data Payload) error
}
