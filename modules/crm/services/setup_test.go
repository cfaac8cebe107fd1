package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/modules/catalog/domain/aggregates/listing"
	"github.com/inmovista/inmovista/modules/crm/domain/aggregates/lead"
	"github.com/inmovista/inmovista/modules/crm/services"
	"github.com/inmovista/inmovista/pkg/capabilities"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/eventbus"
	"github.com/inmovista/inmovista/pkg/ratelimit"
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

func testCtx(ip string) context.Context {
	ctx := composables.WithTx(context.Background(), stubTx{})
	if ip != "" {
		ctx = composables.WithParams(ctx, &composables.Params{
			IP:        ip,
			UserAgent: "test-agent/1.0",
		})
	}
	return ctx
}

func quietBus() eventbus.EventBus {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return eventbus.NewEventPublisher(logger)
}

type staticProber struct {
	exists bool
}

func (p staticProber) ColumnExists(context.Context, string, string) (bool, error) {
	return p.exists, nil
}

func capsWith(exists bool) *capabilities.Registry {
	return capabilities.New(staticProber{exists: exists})
}

type leadRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]lead.Lead
}

func newLeadRepo() *leadRepo {
	return &leadRepo{items: map[int64]lead.Lead{}}
}

func (r *leadRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *leadRepo) GetPaginated(_ context.Context, params *lead.FindParams) ([]lead.Lead, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]lead.Lead, 0, len(r.items))
	for _, l := range r.items {
		if params.State != "" && l.State() != params.State {
			continue
		}
		if params.ListingID > 0 && l.ListingID() != params.ListingID {
			continue
		}
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func (r *leadRepo) GetByID(_ context.Context, id int64) (lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return lead.Lead{}, lead.ErrNotFound
	}
	return l, nil
}

func (r *leadRepo) Create(_ context.Context, l lead.Lead) (lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := lead.Hydrate(
		r.seq, l.ListingID(), l.Name(), l.Phone(), l.Email(), l.Message(),
		l.Channel(), l.State(), l.Notes(), l.AssignedOperatorID(), l.IP(),
		l.UserAgent(), l.CreatedAt(),
	)
	r.items[r.seq] = stored
	return stored, nil
}

func (r *leadRepo) Update(_ context.Context, l lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[l.ID()]; !ok {
		return lead.ErrNotFound
	}
	r.items[l.ID()] = l
	return nil
}

type listingRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]listing.Listing
}

func newListingRepo() *listingRepo {
	return &listingRepo{items: map[int64]listing.Listing{}}
}

func (r *listingRepo) seed(public bool, operatorID *int64) listing.Listing {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	state := listing.StateDraft
	if public {
		state = listing.StatePublished
	}
	stored := listing.Hydrate(
		r.seq, "Depto en Las Condes", "", "apartment", "",
		money.New(98000000, "CLP"), nil, 0, 0, 0,
		state, true, false, operatorID, time.Time{},
	)
	r.items[r.seq] = stored
	return stored
}

func (r *listingRepo) GetPaginated(_ context.Context, _ *listing.FindParams) ([]listing.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]listing.Listing, 0, len(r.items))
	for _, l := range r.items {
		out = append(out, l)
	}
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
	panic("intake tests never create listings through the repository")
}

func (r *listingRepo) Update(_ context.Context, _ listing.Listing) error {
	panic("intake tests never update listings")
}

func (r *listingRepo) Delete(_ context.Context, _ int64) error {
	panic("intake tests never delete listings")
}

type leadFixture struct {
	leads    *leadRepo
	listings *listingRepo
	clock    *clockwork.FakeClock
	service  *services.LeadService
}

func newLeadFixture(assignment bool) *leadFixture {
	leads := newLeadRepo()
	listings := newListingRepo()
	clock := clockwork.NewFakeClock()
	limiter := ratelimit.NewMemoryStore(10*time.Minute, 5, clock)
	service := services.NewLeadService(leads, listings, limiter, capsWith(assignment), quietBus())
	return &leadFixture{
		leads:    leads,
		listings: listings,
		clock:    clock,
		service:  service,
	}
}
