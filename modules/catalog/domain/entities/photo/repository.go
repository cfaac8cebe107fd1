package photo

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("photo not found")

// Repository exposes the primitive photo writes; the ordering and principal
// invariants are composed from them by the photo service inside one
// transaction.
type Repository interface {
	GetByListing(ctx context.Context, listingID int64) ([]Photo, error)
	GetByID(ctx context.Context, listingID, photoID int64) (Photo, error)
	Create(ctx context.Context, p Photo) (Photo, error)
	Delete(ctx context.Context, listingID, photoID int64) error

	MaxOrder(ctx context.Context, listingID int64) (int, error)
	CountPrincipal(ctx context.Context, listingID int64) (int, error)
	ClearPrincipal(ctx context.Context, listingID int64) error
	// MarkPrincipal flips the flag on one photo; reports whether a row
	// matched.
	MarkPrincipal(ctx context.Context, listingID, photoID int64) (bool, error)
	// SetOrder reports whether a row matched so callers can skip stale
	// entries.
	SetOrder(ctx context.Context, listingID, photoID int64, order int) (bool, error)
	// Resequence renumbers a listing's photos 1..N preserving their current
	// relative order.
	Resequence(ctx context.Context, listingID int64) error
	SetAltText(ctx context.Context, listingID, photoID int64, text string) (bool, error)
}

// Storage is the external blob collaborator. It returns a public URL per
// stored file; stored blobs are not removed when a surrounding transaction
// rolls back.
type Storage interface {
	Store(ctx context.Context, filename string, body []byte) (string, error)
}
