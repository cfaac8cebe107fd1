package lead

import (
	"strings"
	"time"
)

type State string

const (
	StateNew       State = "new"
	StateContacted State = "contacted"
	StateClosed    State = "closed"
	StateDiscarded State = "discarded"
)

// Valid reports membership in the fixed state set. Admin transitions are
// deliberately unconstrained beyond this: any state may move to any other,
// Discarded is reachable from everywhere.
func (s State) Valid() bool {
	switch s {
	case StateNew, StateContacted, StateClosed, StateDiscarded:
		return true
	}
	return false
}

// Lead is a public inquiry against a listing. Created only by the public
// intake path; mutated only by admin operations afterwards.
type Lead struct {
	id                 int64
	listingID          int64
	name               string
	phone              string
	email              string
	message            string
	channel            string
	state              State
	notes              string
	assignedOperatorID *int64
	ip                 string
	userAgent          string
	createdAt          time.Time
}

func New(listingID int64, name, phone, email, message, channel string) Lead {
	return Lead{
		listingID: listingID,
		name:      strings.TrimSpace(name),
		phone:     strings.TrimSpace(phone),
		email:     strings.TrimSpace(strings.ToLower(email)),
		message:   strings.TrimSpace(message),
		channel:   strings.TrimSpace(channel),
		state:     StateNew,
	}
}

func Hydrate(
	id int64,
	listingID int64,
	name string,
	phone string,
	email string,
	message string,
	channel string,
	state State,
	notes string,
	assignedOperatorID *int64,
	ip string,
	userAgent string,
	createdAt time.Time,
) Lead {
	return Lead{
		id:                 id,
		listingID:          listingID,
		name:               name,
		phone:              phone,
		email:              email,
		message:            message,
		channel:            channel,
		state:              state,
		notes:              notes,
		assignedOperatorID: assignedOperatorID,
		ip:                 ip,
		userAgent:          userAgent,
		createdAt:          createdAt,
	}
}

func (l Lead) ID() int64                  { return l.id }
func (l Lead) ListingID() int64           { return l.listingID }
func (l Lead) Name() string               { return l.name }
func (l Lead) Phone() string              { return l.phone }
func (l Lead) Email() string              { return l.email }
func (l Lead) Message() string            { return l.message }
func (l Lead) Channel() string            { return l.channel }
func (l Lead) State() State               { return l.state }
func (l Lead) Notes() string              { return l.notes }
func (l Lead) AssignedOperatorID() *int64 { return l.assignedOperatorID }
func (l Lead) IP() string                 { return l.ip }
func (l Lead) UserAgent() string          { return l.userAgent }
func (l Lead) CreatedAt() time.Time       { return l.createdAt }

func (l Lead) WithState(state State) Lead {
	l.state = state
	return l
}

func (l Lead) WithNotes(notes string) Lead {
	l.notes = strings.TrimSpace(notes)
	return l
}

func (l Lead) WithAssignedOperator(operatorID *int64) Lead {
	l.assignedOperatorID = operatorID
	return l
}

func (l Lead) WithRequestMeta(ip, userAgent string) Lead {
	l.ip = ip
	l.userAgent = userAgent
	return l
}
