package listing

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("listing not found")

type FindParams struct {
	Limit    int
	Offset   int
	Search   string
	RegionID *int64
	// MaxPrice is an inclusive amount ceiling in the listing currency's
	// minor units. Zero means no ceiling.
	MaxPrice   int64
	Featured   *bool
	PublicOnly bool
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Listing, int64, error)
	GetByID(ctx context.Context, id int64) (Listing, error)
	Create(ctx context.Context, l Listing) (Listing, error)
	Update(ctx context.Context, l Listing) error
	Delete(ctx context.Context, id int64) error
}
