package lead

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("lead not found")

type FindParams struct {
	Limit     int
	Offset    int
	State     State
	ListingID int64
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Lead, int64, error)
	GetByID(ctx context.Context, id int64) (Lead, error)
	Create(ctx context.Context, l Lead) (Lead, error)
	Update(ctx context.Context, l Lead) error
}
