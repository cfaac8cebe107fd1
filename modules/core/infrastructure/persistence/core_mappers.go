package persistence

import (
	"database/sql"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	"github.com/inmovista/inmovista/modules/core/domain/entities/contact"
	"github.com/inmovista/inmovista/modules/core/infrastructure/persistence/models"
)

func toDomainOperator(row *models.Operator) operator.Operator {
	var contactID *int64
	if row.ContactID.Valid {
		id := row.ContactID.Int64
		contactID = &id
	}
	return operator.Hydrate(
		row.ID,
		row.Handle,
		operator.Role(row.Role),
		row.Active,
		row.Password,
		contactID,
		row.CreatedAt,
	)
}

func toDomainContact(row *models.Contact) contact.Contact {
	return contact.Hydrate(
		row.ID,
		row.Name,
		row.Surname.String,
		row.Email,
		row.Phone.String,
		row.Messenger.String,
		row.Active,
		row.CreatedAt,
	)
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
