package services_test

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	"github.com/inmovista/inmovista/modules/core/domain/entities/contact"
	"github.com/inmovista/inmovista/pkg/capabilities"
	"github.com/inmovista/inmovista/pkg/composables"
)

// stubTx satisfies the transaction interface so service-level tests can run
// against in-memory repositories. Any attempt to reach the database is a test
// bug.
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

type staticProber struct {
	exists bool
}

func (p staticProber) ColumnExists(context.Context, string, string) (bool, error) {
	return p.exists, nil
}

func capsWith(exists bool) *capabilities.Registry {
	return capabilities.New(staticProber{exists: exists})
}

type operatorRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]operator.Operator
}

func newOperatorRepo() *operatorRepo {
	return &operatorRepo{items: map[int64]operator.Operator{}}
}

func (r *operatorRepo) GetPaginated(_ context.Context, params *operator.FindParams) ([]operator.Operator, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]operator.Operator, 0, len(r.items))
	for _, op := range r.items {
		out = append(out, op)
	}
	return out, int64(len(out)), nil
}

func (r *operatorRepo) GetByID(_ context.Context, id int64) (operator.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.items[id]
	if !ok {
		return operator.Operator{}, operator.ErrNotFound
	}
	return op, nil
}

func (r *operatorRepo) GetByHandle(_ context.Context, handle string) (operator.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, op := range r.items {
		if op.Handle() == handle {
			return op, nil
		}
	}
	return operator.Operator{}, operator.ErrNotFound
}

func (r *operatorRepo) Create(_ context.Context, op operator.Operator) (operator.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Handle() == op.Handle() {
			return operator.Operator{}, operator.ErrHandleTaken
		}
	}
	r.seq++
	stored := operator.Hydrate(r.seq, op.Handle(), op.Role(), op.Active(), op.PasswordHash(), op.ContactID(), op.CreatedAt())
	r.items[r.seq] = stored
	return stored, nil
}

func (r *operatorRepo) Update(_ context.Context, op operator.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[op.ID()]; !ok {
		return operator.ErrNotFound
	}
	for _, existing := range r.items {
		if existing.ID() != op.ID() && existing.Handle() == op.Handle() {
			return operator.ErrHandleTaken
		}
	}
	r.items[op.ID()] = op
	return nil
}

func (r *operatorRepo) LinkContact(_ context.Context, operatorID, contactID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.items[operatorID]
	if !ok {
		return operator.ErrNotFound
	}
	if op.ContactID() == nil {
		r.items[operatorID] = op.WithContactID(contactID)
	}
	return nil
}

func (r *operatorRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return operator.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type contactRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]contact.Contact
}

func newContactRepo() *contactRepo {
	return &contactRepo{items: map[int64]contact.Contact{}}
}

func (r *contactRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *contactRepo) GetByID(_ context.Context, id int64) (contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return contact.Contact{}, contact.ErrNotFound
	}
	return c, nil
}

func (r *contactRepo) GetByEmail(_ context.Context, email string) (contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.Email() == email {
			return c, nil
		}
	}
	return contact.Contact{}, contact.ErrNotFound
}

func (r *contactRepo) Create(_ context.Context, c contact.Contact) (contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Email() == c.Email() {
			return contact.Contact{}, contact.ErrEmailTaken
		}
	}
	r.seq++
	stored := contact.Hydrate(r.seq, c.Name(), c.Surname(), c.Email(), c.Phone(), c.Messenger(), c.Active(), c.CreatedAt())
	r.items[r.seq] = stored
	return stored, nil
}

func (r *contactRepo) Update(_ context.Context, c contact.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID()]; !ok {
		return contact.ErrNotFound
	}
	for _, existing := range r.items {
		if existing.ID() != c.ID() && existing.Email() == c.Email() {
			return contact.ErrEmailTaken
		}
	}
	r.items[c.ID()] = c
	return nil
}

func (r *contactRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return contact.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
