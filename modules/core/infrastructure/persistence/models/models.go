package models

import (
	"database/sql"
	"time"
)

type Operator struct {
	ID        int64
	Handle    string
	Role      string
	Active    bool
	Password  string
	ContactID sql.NullInt64
	CreatedAt time.Time
}

type Contact struct {
	ID        int64
	Name      string
	Surname   sql.NullString
	Email     string
	Phone     sql.NullString
	Messenger sql.NullString
	Active    bool
	CreatedAt time.Time
}
