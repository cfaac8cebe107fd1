package models

import (
	"database/sql"
	"time"
)

type Lead struct {
	ID                 int64
	ListingID          int64
	Name               string
	Phone              sql.NullString
	Email              sql.NullString
	Message            sql.NullString
	Channel            sql.NullString
	State              string
	Notes              sql.NullString
	AssignedOperatorID sql.NullInt64
	IP                 sql.NullString
	UserAgent          sql.NullString
	CreatedAt          sql.NullTime
}

func (l *Lead) CreatedAtOrZero() time.Time {
	if l.CreatedAt.Valid {
		return l.CreatedAt.Time
	}
	return time.Time{}
}
