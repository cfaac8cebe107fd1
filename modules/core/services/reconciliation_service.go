package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	"github.com/inmovista/inmovista/modules/core/domain/entities/contact"
	"github.com/inmovista/inmovista/pkg/capabilities"
	"github.com/inmovista/inmovista/pkg/composables"
)

// ReconciliationService backfills the operator-to-contact link for login
// records created before contacts existed. It runs lazily on login and
// explicitly from operator management, always inside the caller's
// transaction.
type ReconciliationService struct {
	operators operator.Repository
	contacts  contact.Repository
	caps      *capabilities.Registry
}

func NewReconciliationService(
	operators operator.Repository,
	contacts contact.Repository,
	caps *capabilities.Registry,
) *ReconciliationService {
	return &ReconciliationService{
		operators: operators,
		contacts:  contacts,
		caps:      caps,
	}
}

// EnsureContactLink resolves the contact backing an operator, creating and
// linking one when the login handle looks like an email. Returns nil when no
// contact can be derived. Idempotent: the email lookup precedes any insert,
// so repeated calls converge on the same contact row.
func (s *ReconciliationService) EnsureContactLink(ctx context.Context, op operator.Operator) (*int64, error) {
	if !s.caps.Has(ctx, capabilities.OperatorContactLink) {
		return op.ContactID(), nil
	}
	if op.ContactID() != nil {
		return op.ContactID(), nil
	}
	if !contact.IsPlausibleEmail(op.Handle()) {
		return nil, nil
	}

	c, err := s.contacts.GetByEmail(ctx, op.Handle())
	if errors.Is(err, contact.ErrNotFound) {
		c, err = s.contacts.Create(ctx, contact.New(
			contact.DeriveDisplayName(op.Handle()),
			"",
			op.Handle(),
			"",
		))
		if errors.Is(err, contact.ErrEmailTaken) {
			// Lost a race with a concurrent reconciliation of the same
			// handle. The winner's row is the link target.
			c, err = s.contacts.GetByEmail(ctx, op.Handle())
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve contact for operator")
	}

	if err := s.operators.LinkContact(ctx, op.ID(), c.ID()); err != nil {
		return nil, err
	}
	id := c.ID()
	composables.UseLogger(ctx).
		WithField("operator_id", op.ID()).
		WithField("contact_id", id).
		Info("linked operator to contact")
	return &id, nil
}
