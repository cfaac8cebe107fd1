package services

import (
	"context"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/go-faster/errors"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/catalog/domain/entities/photo"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/eventbus"
	"github.com/inmovista/inmovista/pkg/serrors"
)

type ListingCreatedEvent struct {
	Result listing.Listing
}

type ListingUpdatedEvent struct {
	Result listing.Listing
}

type ListingDeletedEvent struct {
	ID int64
}

type ListingParams struct {
	Title       string
	Description string
	Category    string
	Condition   string
	PriceAmount int64
	Currency    string
	RegionID    *int64
	Area        float64
	Rooms       int
	Bathrooms   int
	State       listing.State
	Visible     *bool
	Featured    *bool
	OperatorID  *int64
}

type ListingService struct {
	listings  listing.Repository
	photos    photo.Repository
	publisher eventbus.EventBus
}

func NewListingService(
	listings listing.Repository,
	photos photo.Repository,
	publisher eventbus.EventBus,
) *ListingService {
	return &ListingService{
		listings:  listings,
		photos:    photos,
		publisher: publisher,
	}
}

func (s *ListingService) GetPaginated(ctx context.Context, params *listing.FindParams) ([]listing.Listing, int64, error) {
	return s.listings.GetPaginated(ctx, params)
}

func (s *ListingService) GetByID(ctx context.Context, id int64) (listing.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if errors.Is(err, listing.ErrNotFound) {
		return listing.Listing{}, serrors.NotFound("LISTING_NOT_FOUND", "listing not found")
	}
	return l, err
}

// GetPublicByID resolves a listing for the public catalog. Hidden and draft
// listings are reported absent, not forbidden.
func (s *ListingService) GetPublicByID(ctx context.Context, id int64) (listing.Listing, error) {
	l, err := s.GetByID(ctx, id)
	if err != nil {
		return listing.Listing{}, err
	}
	if !l.Public() {
		return listing.Listing{}, serrors.NotFound("LISTING_NOT_FOUND", "listing not found")
	}
	return l, nil
}

// PublicPhotos returns a listing's photos with the principal photo first and
// the rest in sort order.
func (s *ListingService) PublicPhotos(ctx context.Context, listingID int64) ([]photo.Photo, error) {
	photos, err := s.photos.GetByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].Principal() != photos[j].Principal() {
			return photos[i].Principal()
		}
		return photos[i].SortOrder() < photos[j].SortOrder()
	})
	return photos, nil
}

func (s *ListingService) Create(ctx context.Context, params ListingParams) (listing.Listing, error) {
	price, err := buildPrice(params)
	if err != nil {
		return listing.Listing{}, err
	}
	if params.Title == "" {
		return listing.Listing{}, serrors.Validation("LISTING_TITLE_REQUIRED", "title is required")
	}
	state := params.State
	if state == "" {
		state = listing.StateDraft
	}
	if !state.Valid() {
		return listing.Listing{}, serrors.Validation("LISTING_INVALID_STATE", "unknown listing state")
	}

	l := listing.New(params.Title, price).
		WithDescription(params.Description).
		WithTags(params.Category, params.Condition).
		WithRegionID(params.RegionID).
		WithAttributes(params.Area, params.Rooms, params.Bathrooms).
		WithState(state).
		WithOperatorID(params.OperatorID)
	if params.Visible != nil {
		l = l.WithVisible(*params.Visible)
	}
	if params.Featured != nil {
		l = l.WithFeatured(*params.Featured)
	}

	var created listing.Listing
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.listings.Create(txCtx, l)
		return err
	})
	if err != nil {
		return listing.Listing{}, err
	}
	s.publisher.Publish(ListingCreatedEvent{Result: created})
	return created, nil
}

func (s *ListingService) Update(ctx context.Context, id int64, params ListingParams) (listing.Listing, error) {
	var updated listing.Listing
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		l, err := s.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if params.Title != "" {
			l = l.WithTitle(params.Title)
		}
		if params.Description != "" {
			l = l.WithDescription(params.Description)
		}
		if params.Category != "" || params.Condition != "" {
			l = l.WithTags(
				orKeep(params.Category, l.Category()),
				orKeep(params.Condition, l.Condition()),
			)
		}
		if params.PriceAmount > 0 {
			price, err := buildPrice(params)
			if err != nil {
				return err
			}
			l = l.WithPrice(price)
		}
		if params.RegionID != nil {
			l = l.WithRegionID(params.RegionID)
		}
		if params.Area > 0 || params.Rooms > 0 || params.Bathrooms > 0 {
			l = l.WithAttributes(
				orKeepFloat(params.Area, l.Area()),
				orKeepInt(params.Rooms, l.Rooms()),
				orKeepInt(params.Bathrooms, l.Bathrooms()),
			)
		}
		if params.State != "" {
			if !params.State.Valid() {
				return serrors.Validation("LISTING_INVALID_STATE", "unknown listing state")
			}
			l = l.WithState(params.State)
		}
		if params.Visible != nil {
			l = l.WithVisible(*params.Visible)
		}
		if params.Featured != nil {
			l = l.WithFeatured(*params.Featured)
		}
		if params.OperatorID != nil {
			l = l.WithOperatorID(params.OperatorID)
		}
		if err := s.listings.Update(txCtx, l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return listing.Listing{}, err
	}
	s.publisher.Publish(ListingUpdatedEvent{Result: updated})
	return updated, nil
}

// Delete removes the listing; photo rows go with it through the foreign key
// cascade. Stored blobs stay behind.
func (s *ListingService) Delete(ctx context.Context, id int64) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		err := s.listings.Delete(txCtx, id)
		if errors.Is(err, listing.ErrNotFound) {
			return serrors.NotFound("LISTING_NOT_FOUND", "listing not found")
		}
		return err
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(ListingDeletedEvent{ID: id})
	return nil
}

func buildPrice(params ListingParams) (*money.Money, error) {
	if params.PriceAmount < 0 {
		return nil, serrors.Validation("LISTING_INVALID_PRICE", "price must not be negative")
	}
	code := params.Currency
	if code == "" {
		code = "CLP"
	}
	if money.GetCurrency(code) == nil {
		return nil, serrors.Validation("LISTING_INVALID_CURRENCY", "unknown currency code")
	}
	return money.New(params.PriceAmount, code), nil
}

func orKeep(next, current string) string {
	if next == "" {
		return current
	}
	return next
}

func orKeepInt(next, current int) int {
	if next == 0 {
		return current
	}
	return next
}

func orKeepFloat(next, current float64) float64 {
	if next == 0 {
		return current
	}
	return next
}
