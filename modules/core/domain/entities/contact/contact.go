package contact

import (
	"strings"
	"time"
)

// Contact is a profile record. It may stand alone (a listing's point of
// contact) or be linked to exactly one Operator.
type Contact struct {
	id        int64
	name      string
	surname   string
	email     string
	phone     string
	messenger string
	active    bool
	createdAt time.Time
}

func New(name, surname, email, phone string) Contact {
	return Contact{
		name:    strings.TrimSpace(name),
		surname: strings.TrimSpace(surname),
		email:   strings.TrimSpace(strings.ToLower(email)),
		phone:   strings.TrimSpace(phone),
		active:  true,
	}
}

func Hydrate(
	id int64,
	name string,
	surname string,
	email string,
	phone string,
	messenger string,
	active bool,
	createdAt time.Time,
) Contact {
	return Contact{
		id:        id,
		name:      name,
		surname:   surname,
		email:     email,
		phone:     phone,
		messenger: messenger,
		active:    active,
		createdAt: createdAt,
	}
}

func (c Contact) ID() int64            { return c.id }
func (c Contact) Name() string         { return c.name }
func (c Contact) Surname() string      { return c.surname }
func (c Contact) Email() string        { return c.email }
func (c Contact) Phone() string        { return c.phone }
func (c Contact) Messenger() string    { return c.messenger }
func (c Contact) Active() bool         { return c.active }
func (c Contact) CreatedAt() time.Time { return c.createdAt }

func (c Contact) WithMessenger(handle string) Contact {
	c.messenger = strings.TrimSpace(handle)
	return c
}

func (c Contact) WithName(name, surname string) Contact {
	c.name = strings.TrimSpace(name)
	c.surname = strings.TrimSpace(surname)
	return c
}

func (c Contact) WithEmail(email string) Contact {
	c.email = strings.TrimSpace(strings.ToLower(email))
	return c
}

func (c Contact) WithPhone(phone string) Contact {
	c.phone = strings.TrimSpace(phone)
	return c
}
