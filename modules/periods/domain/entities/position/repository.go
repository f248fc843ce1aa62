package position

import "context"

type Repository interface {
	GetAll(ctx context.Context) ([]Position, error)
}
