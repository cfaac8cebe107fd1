package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	"github.com/inmovista/inmovista/modules/core/infrastructure/persistence/models"
	"github.com/inmovista/inmovista/pkg/capabilities"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/repo"
)

const (
	operatorFindQuery = `
		SELECT
			o.id,
			o.handle,
			o.role,
			o.active,
			o.password,
			%s,
			o.created_at
		FROM operators o`

	operatorCountQuery = `SELECT COUNT(o.id) FROM operators o`

	operatorLinkContactQuery = `
		UPDATE operators SET contact_id = $1 WHERE id = $2 AND contact_id IS NULL`

	operatorDeleteQuery = `DELETE FROM operators WHERE id = $1`
)

type PgOperatorRepository struct {
	caps *capabilities.Registry
}

func NewOperatorRepository(caps *capabilities.Registry) operator.Repository {
	return &PgOperatorRepository{caps: caps}
}

// contactIDExpr keeps one SELECT shape for both schema generations: on an old
// schema the column is substituted with a typed NULL.
func (g *PgOperatorRepository) contactIDExpr(ctx context.Context) string {
	if g.caps.Has(ctx, capabilities.OperatorContactLink) {
		return "o.contact_id"
	}
	return "NULL::bigint"
}

func (g *PgOperatorRepository) queryOperators(ctx context.Context, query string, args ...interface{}) ([]operator.Operator, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query operators")
	}
	defer rows.Close()

	out := make([]operator.Operator, 0)
	for rows.Next() {
		var row models.Operator
		if err := rows.Scan(
			&row.ID,
			&row.Handle,
			&row.Role,
			&row.Active,
			&row.Password,
			&row.ContactID,
			&row.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan operator")
		}
		out = append(out, toDomainOperator(&row))
	}
	return out, rows.Err()
}

func (g *PgOperatorRepository) GetPaginated(ctx context.Context, params *operator.FindParams) ([]operator.Operator, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := []string{}
	args := []interface{}{}
	if params.Search != "" {
		where = append(where, fmt.Sprintf("o.handle ILIKE $%d", len(args)+1))
		args = append(args, "%"+params.Search+"%")
	}

	var total int64
	countQuery := repo.Join(operatorCountQuery, repo.JoinWhere(where...))
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed to count operators")
	}

	query := repo.Join(
		fmt.Sprintf(operatorFindQuery, g.contactIDExpr(ctx)),
		repo.JoinWhere(where...),
		"ORDER BY o.id",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	ops, err := g.queryOperators(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return ops, total, nil
}

func (g *PgOperatorRepository) GetByID(ctx context.Context, id int64) (operator.Operator, error) {
	query := repo.Join(fmt.Sprintf(operatorFindQuery, g.contactIDExpr(ctx)), "WHERE o.id = $1")
	ops, err := g.queryOperators(ctx, query, id)
	if err != nil {
		return operator.Operator{}, err
	}
	if len(ops) == 0 {
		return operator.Operator{}, operator.ErrNotFound
	}
	return ops[0], nil
}

func (g *PgOperatorRepository) GetByHandle(ctx context.Context, handle string) (operator.Operator, error) {
	query := repo.Join(fmt.Sprintf(operatorFindQuery, g.contactIDExpr(ctx)), "WHERE o.handle = $1")
	ops, err := g.queryOperators(ctx, query, handle)
	if err != nil {
		return operator.Operator{}, err
	}
	if len(ops) == 0 {
		return operator.Operator{}, operator.ErrNotFound
	}
	return ops[0], nil
}

func (g *PgOperatorRepository) Create(ctx context.Context, op operator.Operator) (operator.Operator, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return operator.Operator{}, err
	}

	fields := []string{"handle", "role", "active", "password"}
	args := []interface{}{op.Handle(), string(op.Role()), op.Active(), op.PasswordHash()}
	if g.caps.Has(ctx, capabilities.OperatorContactLink) {
		fields = append(fields, "contact_id")
		args = append(args, nullInt64(op.ContactID()))
	}

	var id int64
	err = tx.QueryRow(ctx, repo.Insert("operators", fields, "id"), args...).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return operator.Operator{}, operator.ErrHandleTaken
		}
		return operator.Operator{}, errors.Wrap(err, "failed to insert operator")
	}
	return g.GetByID(ctx, id)
}

func (g *PgOperatorRepository) Update(ctx context.Context, op operator.Operator) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	fields := []string{"handle", "role", "active", "password"}
	args := []interface{}{op.Handle(), string(op.Role()), op.Active(), op.PasswordHash()}
	if g.caps.Has(ctx, capabilities.OperatorContactLink) {
		fields = append(fields, "contact_id")
		args = append(args, nullInt64(op.ContactID()))
	}
	args = append(args, op.ID())

	query := repo.Update("operators", fields, fmt.Sprintf("id = $%d", len(args)))
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return operator.ErrHandleTaken
		}
		return errors.Wrap(err, "failed to update operator")
	}
	if tag.RowsAffected() == 0 {
		return operator.ErrNotFound
	}
	return nil
}

// LinkContact sets the contact reference only when it is still unset, so a
// concurrent reconciliation of the same operator cannot flip an existing link.
func (g *PgOperatorRepository) LinkContact(ctx context.Context, operatorID, contactID int64) error {
	if !g.caps.Has(ctx, capabilities.OperatorContactLink) {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, operatorLinkContactQuery, contactID, operatorID); err != nil {
		return errors.Wrap(err, "failed to link operator contact")
	}
	return nil
}

func (g *PgOperatorRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, operatorDeleteQuery, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete operator")
	}
	if tag.RowsAffected() == 0 {
		return operator.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
