package contact

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound   = errors.New("contact not found")
	ErrEmailTaken = errors.New("contact email already exists")
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (Contact, error)
	GetByEmail(ctx context.Context, email string) (Contact, error)
	Create(ctx context.Context, c Contact) (Contact, error)
	Update(ctx context.Context, c Contact) error
	Delete(ctx context.Context, id int64) error
}
