package services

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	"github.com/inmovista/inmovista/modules/core/domain/entities/contact"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/eventbus"
	"github.com/inmovista/inmovista/pkg/serrors"
)

type OperatorCreatedEvent struct {
	Result operator.Operator
}

type OperatorUpdatedEvent struct {
	Result operator.Operator
}

type OperatorDeletedEvent struct {
	ID int64
}

type CreateOperatorParams struct {
	Handle   string
	Password string
	Role     operator.Role
	Name     string
	Surname  string
	Email    string
	Phone    string
}

type UpdateOperatorParams struct {
	Handle   string
	Password string // empty keeps the current credential
	Role     operator.Role
	Active   *bool
	Name     string
	Surname  string
	Email    string
	Phone    string
}

// OperatorService manages back-office logins together with their linked
// contact profiles. Creates and edits are two-phase writes: the operator row
// and the contact row commit or roll back as one unit.
type OperatorService struct {
	operators      operator.Repository
	contacts       contact.Repository
	reconciliation *ReconciliationService
	publisher      eventbus.EventBus
}

func NewOperatorService(
	operators operator.Repository,
	contacts contact.Repository,
	reconciliation *ReconciliationService,
	publisher eventbus.EventBus,
) *OperatorService {
	return &OperatorService{
		operators:      operators,
		contacts:       contacts,
		reconciliation: reconciliation,
		publisher:      publisher,
	}
}

func (s *OperatorService) GetByID(ctx context.Context, id int64) (operator.Operator, error) {
	op, err := s.operators.GetByID(ctx, id)
	if errors.Is(err, operator.ErrNotFound) {
		return operator.Operator{}, serrors.NotFound("OPERATOR_NOT_FOUND", "operator not found")
	}
	return op, err
}

func (s *OperatorService) GetPaginated(ctx context.Context, params *operator.FindParams) ([]operator.Operator, int64, error) {
	return s.operators.GetPaginated(ctx, params)
}

func (s *OperatorService) Create(ctx context.Context, params CreateOperatorParams) (operator.Operator, error) {
	if err := validateOperatorCreate(params); err != nil {
		return operator.Operator{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return operator.Operator{}, errors.Wrap(err, "failed to hash password")
	}

	var created operator.Operator
	err = composables.InTxSteps(ctx,
		composables.Step{
			Name: "create operator",
			Run: func(txCtx context.Context) error {
				op, err := s.operators.Create(txCtx, operator.New(params.Handle, params.Role, string(hash)))
				if errors.Is(err, operator.ErrHandleTaken) {
					return serrors.Conflict("OPERATOR_HANDLE_TAKEN", "login handle is already in use")
				}
				created = op
				return err
			},
		},
		composables.Step{
			Name: "create contact",
			Run: func(txCtx context.Context) error {
				return s.attachContact(txCtx, &created, params.Name, params.Surname, params.Email, params.Phone)
			},
		},
	)
	if err != nil {
		return operator.Operator{}, err
	}
	s.publisher.Publish(OperatorCreatedEvent{Result: created})
	return created, nil
}

func (s *OperatorService) Update(ctx context.Context, id int64, params UpdateOperatorParams) (operator.Operator, error) {
	if params.Role != "" && !params.Role.Valid() {
		return operator.Operator{}, serrors.Validation("OPERATOR_INVALID_ROLE", "unknown operator role")
	}

	var updated operator.Operator
	err := composables.InTxSteps(ctx,
		composables.Step{
			Name: "update operator",
			Run: func(txCtx context.Context) error {
				op, err := s.operators.GetByID(txCtx, id)
				if errors.Is(err, operator.ErrNotFound) {
					return serrors.NotFound("OPERATOR_NOT_FOUND", "operator not found")
				}
				if err != nil {
					return err
				}
				if params.Handle != "" {
					op = op.WithHandle(params.Handle)
				}
				if params.Role != "" {
					op = op.WithRole(params.Role)
				}
				if params.Active != nil {
					op = op.WithActive(*params.Active)
				}
				if params.Password != "" {
					hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
					if err != nil {
						return errors.Wrap(err, "failed to hash password")
					}
					op = op.WithPasswordHash(string(hash))
				}
				if err := s.operators.Update(txCtx, op); err != nil {
					if errors.Is(err, operator.ErrHandleTaken) {
						return serrors.Conflict("OPERATOR_HANDLE_TAKEN", "login handle is already in use")
					}
					return err
				}
				updated = op
				return nil
			},
		},
		composables.Step{
			Name: "update contact",
			Run: func(txCtx context.Context) error {
				if updated.ContactID() == nil {
					return s.attachContact(txCtx, &updated, params.Name, params.Surname, params.Email, params.Phone)
				}
				c, err := s.contacts.GetByID(txCtx, *updated.ContactID())
				if err != nil {
					return err
				}
				if params.Name != "" || params.Surname != "" {
					c = c.WithName(orKeep(params.Name, c.Name()), orKeep(params.Surname, c.Surname()))
				}
				if params.Email != "" {
					c = c.WithEmail(params.Email)
				}
				if params.Phone != "" {
					c = c.WithPhone(params.Phone)
				}
				if err := s.contacts.Update(txCtx, c); err != nil {
					if errors.Is(err, contact.ErrEmailTaken) {
						return serrors.Conflict("CONTACT_EMAIL_TAKEN", "contact email is already in use")
					}
					return err
				}
				return nil
			},
		},
	)
	if err != nil {
		return operator.Operator{}, err
	}
	s.publisher.Publish(OperatorUpdatedEvent{Result: updated})
	return updated, nil
}

func (s *OperatorService) Delete(ctx context.Context, id int64) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		err := s.operators.Delete(txCtx, id)
		if errors.Is(err, operator.ErrNotFound) {
			return serrors.NotFound("OPERATOR_NOT_FOUND", "operator not found")
		}
		return err
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(OperatorDeletedEvent{ID: id})
	return nil
}

// attachContact creates and links the profile record for an unlinked
// operator. Explicit contact fields win; otherwise the link is derived from
// the login handle when it looks like an email.
func (s *OperatorService) attachContact(ctx context.Context, op *operator.Operator, name, surname, email, phone string) error {
	if email == "" {
		contactID, err := s.reconciliation.EnsureContactLink(ctx, *op)
		if err != nil {
			return err
		}
		if contactID != nil {
			*op = op.WithContactID(*contactID)
		}
		return nil
	}
	if name == "" {
		name = contact.DeriveDisplayName(email)
	}
	c, err := s.contacts.Create(ctx, contact.New(name, surname, email, phone))
	if errors.Is(err, contact.ErrEmailTaken) {
		return serrors.Conflict("CONTACT_EMAIL_TAKEN", "contact email is already in use")
	}
	if err != nil {
		return err
	}
	if err := s.operators.LinkContact(ctx, op.ID(), c.ID()); err != nil {
		return err
	}
	*op = op.WithContactID(c.ID())
	return nil
}

func validateOperatorCreate(params CreateOperatorParams) error {
	if params.Handle == "" {
		return serrors.Validation("OPERATOR_HANDLE_REQUIRED", "login handle is required")
	}
	if len(params.Password) < 8 {
		return serrors.Validation("OPERATOR_PASSWORD_TOO_SHORT", "password must be at least 8 characters")
	}
	if !params.Role.Valid() {
		return serrors.Validation("OPERATOR_INVALID_ROLE", "unknown operator role")
	}
	return nil
}

func orKeep(next, current string) string {
	if next == "" {
		return current
	}
	return next
}
