package operator

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAgent
}

// Operator is a back-office login identity. Its Contact link may be absent:
// login records can predate the introduction of contacts and are reconciled
// lazily (see services.ReconciliationService).
type Operator struct {
	id           int64
	handle       string
	role         Role
	active       bool
	passwordHash string
	contactID    *int64
	createdAt    time.Time
}

func New(handle string, role Role, passwordHash string) Operator {
	return Operator{
		handle:       strings.TrimSpace(strings.ToLower(handle)),
		role:         role,
		active:       true,
		passwordHash: passwordHash,
	}
}

func Hydrate(
	id int64,
	handle string,
	role Role,
	active bool,
	passwordHash string,
	contactID *int64,
	createdAt time.Time,
) Operator {
	return Operator{
		id:           id,
		handle:       handle,
		role:         role,
		active:       active,
		passwordHash: passwordHash,
		contactID:    contactID,
		createdAt:    createdAt,
	}
}

func (o Operator) ID() int64            { return o.id }
func (o Operator) Handle() string       { return o.handle }
func (o Operator) Role() Role           { return o.role }
func (o Operator) Active() bool         { return o.active }
func (o Operator) PasswordHash() string { return o.passwordHash }
func (o Operator) ContactID() *int64    { return o.contactID }
func (o Operator) CreatedAt() time.Time { return o.createdAt }

func (o Operator) WithHandle(handle string) Operator {
	o.handle = strings.TrimSpace(strings.ToLower(handle))
	return o
}

func (o Operator) WithContactID(contactID int64) Operator {
	o.contactID = &contactID
	return o
}

func (o Operator) WithRole(role Role) Operator {
	o.role = role
	return o
}

func (o Operator) WithActive(active bool) Operator {
	o.active = active
	return o
}

func (o Operator) WithPasswordHash(hash string) Operator {
	o.passwordHash = hash
	return o
}
