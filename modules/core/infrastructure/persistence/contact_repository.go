package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/inmovista/inmovista/modules/core/domain/entities/contact"
	"github.com/inmovista/inmovista/modules/core/infrastructure/persistence/models"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/repo"
)

const (
	contactFindQuery = `
		SELECT
			c.id,
			c.name,
			c.surname,
			c.email,
			c.phone,
			c.messenger,
			c.active,
			c.created_at
		FROM contacts c`

	// DO NOTHING instead of raising 23505: a raised unique violation would
	// abort the enclosing transaction, and reconciliation re-reads the
	// winner's row on that same transaction after losing an insert race.
	contactInsertQuery = `
		INSERT INTO contacts (name, surname, email, phone, messenger, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`

	contactDeleteQuery = `DELETE FROM contacts WHERE id = $1`
)

type PgContactRepository struct{}

func NewContactRepository() contact.Repository {
	return &PgContactRepository{}
}

func (g *PgContactRepository) queryContact(ctx context.Context, query string, args ...interface{}) (contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	var row models.Contact
	err = tx.QueryRow(ctx, query, args...).Scan(
		&row.ID,
		&row.Name,
		&row.Surname,
		&row.Email,
		&row.Phone,
		&row.Messenger,
		&row.Active,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contact.Contact{}, contact.ErrNotFound
		}
		return contact.Contact{}, errors.Wrap(err, "failed to query contact")
	}
	return toDomainContact(&row), nil
}

func (g *PgContactRepository) GetByID(ctx context.Context, id int64) (contact.Contact, error) {
	return g.queryContact(ctx, repo.Join(contactFindQuery, "WHERE c.id = $1"), id)
}

func (g *PgContactRepository) GetByEmail(ctx context.Context, email string) (contact.Contact, error) {
	return g.queryContact(ctx, repo.Join(contactFindQuery, "WHERE c.email = $1"), email)
}

func (g *PgContactRepository) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return contact.Contact{}, err
	}
	var id int64
	err = tx.QueryRow(
		ctx,
		contactInsertQuery,
		c.Name(),
		nullString(c.Surname()),
		c.Email(),
		nullString(c.Phone()),
		nullString(c.Messenger()),
		c.Active(),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contact.Contact{}, contact.ErrEmailTaken
		}
		return contact.Contact{}, errors.Wrap(err, "failed to insert contact")
	}
	return g.GetByID(ctx, id)
}

func (g *PgContactRepository) Update(ctx context.Context, c contact.Contact) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	fields := []string{"name", "surname", "email", "phone", "messenger", "active"}
	query := repo.Update("contacts", fields, "id = $7")
	tag, err := tx.Exec(
		ctx,
		query,
		c.Name(),
		nullString(c.Surname()),
		c.Email(),
		nullString(c.Phone()),
		nullString(c.Messenger()),
		c.Active(),
		c.ID(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return contact.ErrEmailTaken
		}
		return errors.Wrap(err, "failed to update contact")
	}
	if tag.RowsAffected() == 0 {
		return contact.ErrNotFound
	}
	return nil
}

func (g *PgContactRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, contactDeleteQuery, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete contact")
	}
	if tag.RowsAffected() == 0 {
		return contact.ErrNotFound
	}
	return nil
}
