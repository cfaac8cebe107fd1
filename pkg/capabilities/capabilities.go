package capabilities

import (
	"context"
	"sync"

	"github.com/inmovista/inmovista/pkg/composables"
)

// Flag names an optional column that may or may not exist in the connected
// schema. The data model was extended in place over time, so the service has
// to run against both the old and the new schema during a rolling migration.
type Flag string

const (
	// OperatorContactLink: operators.contact_id references contacts.
	OperatorContactLink Flag = "operator_contact_link"
	// LeadAssignment: leads.assigned_operator_id for intake auto-assignment.
	LeadAssignment Flag = "lead_assignment"
	// LeadTimestamp: leads.created_at.
	LeadTimestamp Flag = "lead_timestamp"
)

var flagColumns = map[Flag]struct {
	table  string
	column string
}{
	OperatorContactLink: {"operators", "contact_id"},
	LeadAssignment:      {"leads", "assigned_operator_id"},
	LeadTimestamp:       {"leads", "created_at"},
}

// Prober performs the metadata lookup for a single column.
type Prober interface {
	ColumnExists(ctx context.Context, table, column string) (bool, error)
}

const columnExistsQuery = `
	SELECT EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
	)`

// PgProber asks information_schema through whatever connection the context
// carries.
type PgProber struct{}

func NewPgProber() Prober {
	return &PgProber{}
}

func (p *PgProber) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	exists := false
	if err := tx.QueryRow(ctx, columnExistsQuery, table, column).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Registry memoizes capability flags for the process lifetime. The first
// caller of a flag triggers the lookup; a lookup failure caches false and is
// not retried. Concurrent first-callers may race, which is fine: the lookup
// is idempotent and last write wins on the same value. A schema migration
// requires a process restart.
type Registry struct {
	prober Prober
	cache  sync.Map // Flag -> bool
}

func New(prober Prober) *Registry {
	return &Registry{prober: prober}
}

func (r *Registry) Has(ctx context.Context, flag Flag) bool {
	if v, ok := r.cache.Load(flag); ok {
		return v.(bool)
	}
	cols, ok := flagColumns[flag]
	if !ok {
		r.cache.Store(flag, false)
		return false
	}
	exists, err := r.prober.ColumnExists(ctx, cols.table, cols.column)
	if err != nil {
		composables.UseLogger(ctx).
			WithError(err).
			WithField("flag", string(flag)).
			Warn("capability probe failed, caching false for process lifetime")
		exists = false
	}
	r.cache.Store(flag, exists)
	return exists
}
