package operator

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound    = errors.New("operator not found")
	ErrHandleTaken = errors.New("operator handle already exists")
)

type FindParams struct {
	Limit  int
	Offset int
	Search string
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Operator, int64, error)
	GetByID(ctx context.Context, id int64) (Operator, error)
	GetByHandle(ctx context.Context, handle string) (Operator, error)
	Create(ctx context.Context, op Operator) (Operator, error)
	Update(ctx context.Context, op Operator) error
	LinkContact(ctx context.Context, operatorID, contactID int64) error
	Delete(ctx context.Context, id int64) error
}
