package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/inmovista/inmovista/modules/crm/domain/aggregates/lead"
	"github.com/inmovista/inmovista/modules/crm/infrastructure/persistence/models"
	"github.com/inmovista/inmovista/pkg/capabilities"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/repo"
)

const (
	leadFindQuery = `
		SELECT
			ld.id,
			ld.listing_id,
			ld.name,
			ld.phone,
			ld.email,
			ld.message,
			ld.channel,
			ld.state,
			ld.notes,
			%s,
			ld.ip,
			ld.user_agent,
			%s
		FROM leads ld`

	leadCountQuery = `SELECT COUNT(ld.id) FROM leads ld`
)

type PgLeadRepository struct {
	caps *capabilities.Registry
}

func NewLeadRepository(caps *capabilities.Registry) lead.Repository {
	return &PgLeadRepository{caps: caps}
}

func (g *PgLeadRepository) selectQuery(ctx context.Context) string {
	assigned := "NULL::bigint"
	if g.caps.Has(ctx, capabilities.LeadAssignment) {
		assigned = "ld.assigned_operator_id"
	}
	createdAt := "NULL::timestamptz"
	if g.caps.Has(ctx, capabilities.LeadTimestamp) {
		createdAt = "ld.created_at"
	}
	return fmt.Sprintf(leadFindQuery, assigned, createdAt)
}

func (g *PgLeadRepository) queryLeads(ctx context.Context, query string, args ...interface{}) ([]lead.Lead, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query leads")
	}
	defer rows.Close()

	out := make([]lead.Lead, 0)
	for rows.Next() {
		var row models.Lead
		if err := rows.Scan(
			&row.ID,
			&row.ListingID,
			&row.Name,
			&row.Phone,
			&row.Email,
			&row.Message,
			&row.Channel,
			&row.State,
			&row.Notes,
			&row.AssignedOperatorID,
			&row.IP,
			&row.UserAgent,
			&row.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan lead")
		}
		out = append(out, toDomainLead(&row))
	}
	return out, rows.Err()
}

func toDomainLead(row *models.Lead) lead.Lead {
	var assigned *int64
	if row.AssignedOperatorID.Valid {
		id := row.AssignedOperatorID.Int64
		assigned = &id
	}
	return lead.Hydrate(
		row.ID,
		row.ListingID,
		row.Name,
		row.Phone.String,
		row.Email.String,
		row.Message.String,
		row.Channel.String,
		lead.State(row.State),
		row.Notes.String,
		assigned,
		row.IP.String,
		row.UserAgent.String,
		row.CreatedAtOrZero(),
	)
}

func (g *PgLeadRepository) GetPaginated(ctx context.Context, params *lead.FindParams) ([]lead.Lead, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := []string{}
	args := []interface{}{}
	if params.State != "" {
		where = append(where, fmt.Sprintf("ld.state = $%d", len(args)+1))
		args = append(args, string(params.State))
	}
	if params.ListingID > 0 {
		where = append(where, fmt.Sprintf("ld.listing_id = $%d", len(args)+1))
		args = append(args, params.ListingID)
	}

	var total int64
	countQuery := repo.Join(leadCountQuery, repo.JoinWhere(where...))
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count leads")
	}

	query := repo.Join(
		g.selectQuery(ctx),
		repo.JoinWhere(where...),
		"ORDER BY ld.id DESC",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	items, err := g.queryLeads(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (g *PgLeadRepository) GetByID(ctx context.Context, id int64) (lead.Lead, error) {
	items, err := g.queryLeads(ctx, repo.Join(g.selectQuery(ctx), "WHERE ld.id = $1"), id)
	if err != nil {
		return lead.Lead{}, err
	}
	if len(items) == 0 {
		return lead.Lead{}, lead.ErrNotFound
	}
	return items[0], nil
}

// Create is a single-statement insert. The assignment column only appears
// when the schema has it; older schemas get the narrower statement.
func (g *PgLeadRepository) Create(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return lead.Lead{}, err
	}

	fields := []string{"listing_id", "name", "phone", "email", "message", "channel", "state", "notes", "ip", "user_agent"}
	args := []interface{}{
		l.ListingID(),
		l.Name(),
		nullText(l.Phone()),
		nullText(l.Email()),
		nullText(l.Message()),
		nullText(l.Channel()),
		string(l.State()),
		nullText(l.Notes()),
		nullText(l.IP()),
		nullText(l.UserAgent()),
	}
	if g.caps.Has(ctx, capabilities.LeadAssignment) {
		fields = append(fields, "assigned_operator_id")
		args = append(args, nullID(l.AssignedOperatorID()))
	}

	var id int64
	if err := tx.QueryRow(ctx, repo.Insert("leads", fields, "id"), args...).Scan(&id); err != nil {
		return lead.Lead{}, errors.Wrap(err, "failed to insert lead")
	}
	return g.GetByID(ctx, id)
}

func (g *PgLeadRepository) Update(ctx context.Context, l lead.Lead) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	fields := []string{"state", "notes"}
	args := []interface{}{string(l.State()), nullText(l.Notes())}
	if g.caps.Has(ctx, capabilities.LeadAssignment) {
		fields = append(fields, "assigned_operator_id")
		args = append(args, nullID(l.AssignedOperatorID()))
	}
	args = append(args, l.ID())

	query := repo.Update("leads", fields, fmt.Sprintf("id = $%d", len(args)))
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update lead")
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrNotFound
	}
	return nil
}

func nullText(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullID(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
