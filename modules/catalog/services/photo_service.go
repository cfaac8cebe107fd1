package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/catalog/domain/entities/photo"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/eventbus"
	"github.com/inmovista/inmovista/pkg/serrors"
)

type PhotoUploadedEvent struct {
	ListingID int64
	URLs      []string
}

type PhotoDeletedEvent struct {
	ListingID int64
	PhotoID   int64
}

// UploadFile is one incoming blob. The filename is advisory; storage picks
// its own name from the sniffed content type.
type UploadFile struct {
	Filename string
	Body     []byte
}

// OrderEntry is one UI-supplied position assignment.
type OrderEntry struct {
	PhotoID int64
	Order   int
}

// PhotoService owns the two photo invariants: a single principal photo per
// listing and a contiguous sort order. Every operation is one transaction;
// blob writes that precede a rollback are not compensated.
type PhotoService struct {
	photos    photo.Repository
	listings  listing.Repository
	storage   photo.Storage
	publisher eventbus.EventBus
}

func NewPhotoService(
	photos photo.Repository,
	listings listing.Repository,
	storage photo.Storage,
	publisher eventbus.EventBus,
) *PhotoService {
	return &PhotoService{
		photos:    photos,
		listings:  listings,
		storage:   storage,
		publisher: publisher,
	}
}

func (s *PhotoService) GetByListing(ctx context.Context, listingID int64) ([]photo.Photo, error) {
	return s.photos.GetByListing(ctx, listingID)
}

// Upload stores the blobs sequentially and appends rows after the current
// maximum order. The first photo of the batch becomes principal only when
// the listing has no principal yet. The first storage failure aborts the
// whole batch.
func (s *PhotoService) Upload(ctx context.Context, listingID int64, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, serrors.Validation("PHOTO_NO_FILES", "at least one file is required")
	}

	urls := make([]string, 0, len(files))
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.listings.GetByID(txCtx, listingID); err != nil {
			if errors.Is(err, listing.ErrNotFound) {
				return serrors.NotFound("LISTING_NOT_FOUND", "listing not found")
			}
			return err
		}

		maxOrder, err := s.photos.MaxOrder(txCtx, listingID)
		if err != nil {
			return err
		}
		principals, err := s.photos.CountPrincipal(txCtx, listingID)
		if err != nil {
			return err
		}

		for i, file := range files {
			url, err := s.storage.Store(txCtx, file.Filename, file.Body)
			if err != nil {
				return serrors.Upstream("PHOTO_UPLOAD_FAILED", "blob upload failed", err)
			}
			principal := i == 0 && principals == 0
			if _, err := s.photos.Create(txCtx, photo.New(listingID, url, principal, maxOrder+i+1)); err != nil {
				return err
			}
			urls = append(urls, url)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(PhotoUploadedEvent{ListingID: listingID, URLs: urls})
	return urls, nil
}

// Delete removes one photo, promotes the smallest-order survivor when the
// principal was deleted, and closes the order gap. An empty photo set is a
// valid terminal state.
func (s *PhotoService) Delete(ctx context.Context, listingID, photoID int64) error {
	var deleted photo.Photo
	err := composables.InTxSteps(ctx,
		composables.Step{
			Name: "load photo",
			Run: func(txCtx context.Context) error {
				p, err := s.photos.GetByID(txCtx, listingID, photoID)
				if errors.Is(err, photo.ErrNotFound) {
					return serrors.NotFound("PHOTO_NOT_FOUND", "photo not found on listing")
				}
				deleted = p
				return err
			},
		},
		composables.Step{
			Name: "delete row",
			Run: func(txCtx context.Context) error {
				return s.photos.Delete(txCtx, listingID, photoID)
			},
		},
		composables.Step{
			Name: "promote survivor",
			Run: func(txCtx context.Context) error {
				if !deleted.Principal() {
					return nil
				}
				if err := s.photos.ClearPrincipal(txCtx, listingID); err != nil {
					return err
				}
				survivors, err := s.photos.GetByListing(txCtx, listingID)
				if err != nil {
					return err
				}
				if len(survivors) == 0 {
					return nil
				}
				_, err = s.photos.MarkPrincipal(txCtx, listingID, survivors[0].ID())
				return err
			},
		},
		composables.Step{
			Name: "resequence",
			Run: func(txCtx context.Context) error {
				return s.photos.Resequence(txCtx, listingID)
			},
		},
	)
	if err != nil {
		return err
	}
	s.publisher.Publish(PhotoDeletedEvent{ListingID: listingID, PhotoID: photoID})
	return nil
}

// SetPrincipal clears every flag on the listing before setting the target,
// so it converges even from an inconsistent prior state.
func (s *PhotoService) SetPrincipal(ctx context.Context, listingID, photoID int64) error {
	return composables.InTxSteps(ctx,
		composables.Step{
			Name: "check photo",
			Check: func(txCtx context.Context) error {
				_, err := s.photos.GetByID(txCtx, listingID, photoID)
				if errors.Is(err, photo.ErrNotFound) {
					return serrors.NotFound("PHOTO_NOT_FOUND", "photo not found on listing")
				}
				return err
			},
		},
		composables.Step{
			Name: "clear principal flags",
			Run: func(txCtx context.Context) error {
				return s.photos.ClearPrincipal(txCtx, listingID)
			},
		},
		composables.Step{
			Name: "set principal",
			Run: func(txCtx context.Context) error {
				matched, err := s.photos.MarkPrincipal(txCtx, listingID, photoID)
				if err != nil {
					return err
				}
				if !matched {
					return serrors.NotFound("PHOTO_NOT_FOUND", "photo not found on listing")
				}
				return nil
			},
		},
	)
}

// Reorder applies each entry independently. Entries naming a photo that is
// not on the listing are skipped: order values come from the UI and go stale
// under concurrent edits, so a stale entry is expected, not an error. No
// permutation check runs afterwards.
func (s *PhotoService) Reorder(ctx context.Context, listingID int64, entries []OrderEntry) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		for _, entry := range entries {
			if _, err := s.photos.SetOrder(txCtx, listingID, entry.PhotoID, entry.Order); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PhotoService) SetAltText(ctx context.Context, listingID, photoID int64, text string) error {
	normalized, ok := photo.NormalizeAltText(text)
	if !ok {
		return serrors.Validation("PHOTO_ALT_TEXT_TOO_LONG", "alt text must be 160 characters or fewer")
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		matched, err := s.photos.SetAltText(txCtx, listingID, photoID, normalized)
		if err != nil {
			return err
		}
		if !matched {
			return serrors.NotFound("PHOTO_NOT_FOUND", "photo not found on listing")
		}
		return nil
	})
}
