package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/catalog/domain/entities/photo"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/eventbus"
)

type stubTx struct{}

func (stubTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("unexpected database access in test")
}

func (stubTx) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("unexpected database access in test")
}

func (stubTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("unexpected database access in test")
}

func testCtx() context.Context {
	return composables.WithTx(context.Background(), stubTx{})
}

func quietBus() eventbus.EventBus {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return eventbus.NewEventPublisher(logger)
}

type listingRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]listing.Listing
}

func newListingRepo() *listingRepo {
	return &listingRepo{items: map[int64]listing.Listing{}}
}

func (r *listingRepo) seed(public bool) listing.Listing {
	l := listing.New("Casa en Providencia", money.New(185000000, "CLP"))
	if public {
		l = l.WithState(listing.StatePublished)
	}
	created, _ := r.Create(context.Background(), l)
	return created
}

func (r *listingRepo) GetPaginated(_ context.Context, params *listing.FindParams) ([]listing.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]listing.Listing, 0, len(r.items))
	for _, l := range r.items {
		if params.PublicOnly && !l.Public() {
			continue
		}
		if params.RegionID != nil && (l.RegionID() == nil || *l.RegionID() != *params.RegionID) {
			continue
		}
		if params.MaxPrice > 0 && l.Price().Amount() > params.MaxPrice {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, int64(len(out)), nil
}

func (r *listingRepo) GetByID(_ context.Context, id int64) (listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return listing.Listing{}, listing.ErrNotFound
	}
	return l, nil
}

func (r *listingRepo) Create(_ context.Context, l listing.Listing) (listing.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := listing.Hydrate(
		r.seq, l.Title(), l.Description(), l.Category(), l.Condition(), l.Price(),
		l.RegionID(), l.Area(), l.Rooms(), l.Bathrooms(), l.State(), l.Visible(),
		l.Featured(), l.OperatorID(), l.CreatedAt(),
	)
	r.items[r.seq] = stored
	return stored, nil
}

func (r *listingRepo) Update(_ context.Context, l listing.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[l.ID()]; !ok {
		return listing.ErrNotFound
	}
	r.items[l.ID()] = l
	return nil
}

func (r *listingRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return listing.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func nowZero() time.Time { return time.Time{} }

type photoRow struct {
	id        int64
	listingID int64
	url       string
	principal bool
	sortOrder int
	altText   string
}

type photoRepo struct {
	mu   sync.Mutex
	seq  int64
	rows []*photoRow
}

func newPhotoRepo() *photoRepo {
	return &photoRepo{}
}

func (r *photoRepo) forListing(listingID int64) []*photoRow {
	out := make([]*photoRow, 0)
	for _, row := range r.rows {
		if row.listingID == listingID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].sortOrder != out[j].sortOrder {
			return out[i].sortOrder < out[j].sortOrder
		}
		return out[i].id < out[j].id
	})
	return out
}

func (r *photoRepo) GetByListing(_ context.Context, listingID int64) ([]photo.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.forListing(listingID)
	out := make([]photo.Photo, 0, len(rows))
	for _, row := range rows {
		out = append(out, photo.Hydrate(row.id, row.listingID, row.url, row.principal, row.sortOrder, row.altText, nowZero()))
	}
	return out, nil
}

func (r *photoRepo) GetByID(_ context.Context, listingID, photoID int64) (photo.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.listingID == listingID && row.id == photoID {
			return photo.Hydrate(row.id, row.listingID, row.url, row.principal, row.sortOrder, row.altText, nowZero()), nil
		}
	}
	return photo.Photo{}, photo.ErrNotFound
}

func (r *photoRepo) Create(_ context.Context, p photo.Photo) (photo.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	row := &photoRow{
		id:        r.seq,
		listingID: p.ListingID(),
		url:       p.URL(),
		principal: p.Principal(),
		sortOrder: p.SortOrder(),
		altText:   p.AltText(),
	}
	r.rows = append(r.rows, row)
	return photo.Hydrate(row.id, row.listingID, row.url, row.principal, row.sortOrder, row.altText, nowZero()), nil
}

func (r *photoRepo) Delete(_ context.Context, listingID, photoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.listingID == listingID && row.id == photoID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return photo.ErrNotFound
}

func (r *photoRepo) MaxOrder(_ context.Context, listingID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, row := range r.rows {
		if row.listingID == listingID && row.sortOrder > max {
			max = row.sortOrder
		}
	}
	return max, nil
}

func (r *photoRepo) CountPrincipal(_ context.Context, listingID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, row := range r.rows {
		if row.listingID == listingID && row.principal {
			count++
		}
	}
	return count, nil
}

func (r *photoRepo) ClearPrincipal(_ context.Context, listingID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.listingID == listingID {
			row.principal = false
		}
	}
	return nil
}

func (r *photoRepo) MarkPrincipal(_ context.Context, listingID, photoID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.listingID == listingID && row.id == photoID {
			row.principal = true
			return true, nil
		}
	}
	return false, nil
}

func (r *photoRepo) SetOrder(_ context.Context, listingID, photoID int64, order int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.listingID == listingID && row.id == photoID {
			row.sortOrder = order
			return true, nil
		}
	}
	return false, nil
}

func (r *photoRepo) Resequence(_ context.Context, listingID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.forListing(listingID) {
		row.sortOrder = i + 1
	}
	return nil
}

func (r *photoRepo) SetAltText(_ context.Context, listingID, photoID int64, text string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.listingID == listingID && row.id == photoID {
			row.altText = text
			return true, nil
		}
	}
	return false, nil
}

// fakeStorage hands out sequential URLs and can be told to fail on the nth
// call.
type fakeStorage struct {
	mu     sync.Mutex
	calls  int
	failOn int // 1-based; 0 never fails
}

func (s *fakeStorage) Store(_ context.Context, _ string, _ []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failOn > 0 && s.calls >= s.failOn {
		return "", fmt.Errorf("blob store unreachable")
	}
	return fmt.Sprintf("https://cdn.test/photos/%d.jpg", s.calls), nil
}
