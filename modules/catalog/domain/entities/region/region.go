package region

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("region not found")

// Region is a read-only reference entity for listing geography.
type Region struct {
	id   int64
	name string
}

func Hydrate(id int64, name string) Region {
	return Region{id: id, name: name}
}

func (r Region) ID() int64    { return r.id }
func (r Region) Name() string { return r.name }

type Repository interface {
	GetAll(ctx context.Context) ([]Region, error)
	GetByID(ctx context.Context, id int64) (Region, error)
}
