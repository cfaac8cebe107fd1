package services_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	"github.com/inmovista/inmovista/modules/core/services"
	"github.com/inmovista/inmovista/pkg/eventbus"
	"github.com/inmovista/inmovista/pkg/serrors"
)

func newOperatorFixture(capability bool) (*services.OperatorService, *operatorRepo, *contactRepo) {
	operators := newOperatorRepo()
	contacts := newContactRepo()
	reconciliation := services.NewReconciliationService(operators, contacts, capsWith(capability))
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := services.NewOperatorService(operators, contacts, reconciliation, eventbus.NewEventPublisher(logger))
	return svc, operators, contacts
}

func TestOperatorCreate_TwoPhase(t *testing.T) {
	svc, operators, contacts := newOperatorFixture(true)

	op, err := svc.Create(testCtx(), services.CreateOperatorParams{
		Handle:   "Maria@Site.com",
		Password: "s3cret-pass",
		Role:     operator.RoleAgent,
		Name:     "Maria",
		Surname:  "Fernandez",
		Email:    "maria@site.com",
		Phone:    "+56 9 1234 5678",
	})
	require.NoError(t, err)
	require.Equal(t, "maria@site.com", op.Handle())
	require.NotNil(t, op.ContactID())

	c, err := contacts.GetByID(testCtx(), *op.ContactID())
	require.NoError(t, err)
	require.Equal(t, "Maria", c.Name())
	require.Equal(t, "maria@site.com", c.Email())

	stored, err := operators.GetByID(testCtx(), op.ID())
	require.NoError(t, err)
	require.NotNil(t, stored.ContactID())
}

func TestOperatorCreate_ContactDerivedFromHandle(t *testing.T) {
	svc, _, contacts := newOperatorFixture(true)

	op, err := svc.Create(testCtx(), services.CreateOperatorParams{
		Handle:   "jose_luis@site.com",
		Password: "s3cret-pass",
		Role:     operator.RoleAgent,
	})
	require.NoError(t, err)
	require.NotNil(t, op.ContactID())

	c, err := contacts.GetByID(testCtx(), *op.ContactID())
	require.NoError(t, err)
	require.Equal(t, "jose luis", c.Name())
}

func TestOperatorCreate_DuplicateHandle(t *testing.T) {
	svc, _, _ := newOperatorFixture(true)

	params := services.CreateOperatorParams{
		Handle:   "ops@site.com",
		Password: "s3cret-pass",
		Role:     operator.RoleAdmin,
	}
	_, err := svc.Create(testCtx(), params)
	require.NoError(t, err)

	_, err = svc.Create(testCtx(), params)
	require.True(t, serrors.Is(err, serrors.KindConflict))
}

func TestOperatorCreate_Validation(t *testing.T) {
	svc, _, _ := newOperatorFixture(true)

	_, err := svc.Create(testCtx(), services.CreateOperatorParams{
		Handle:   "",
		Password: "s3cret-pass",
		Role:     operator.RoleAdmin,
	})
	require.True(t, serrors.Is(err, serrors.KindValidation))

	_, err = svc.Create(testCtx(), services.CreateOperatorParams{
		Handle:   "ops@site.com",
		Password: "short",
		Role:     operator.RoleAdmin,
	})
	require.True(t, serrors.Is(err, serrors.KindValidation))

	_, err = svc.Create(testCtx(), services.CreateOperatorParams{
		Handle:   "ops@site.com",
		Password: "s3cret-pass",
		Role:     "superuser",
	})
	require.True(t, serrors.Is(err, serrors.KindValidation))
}

func TestOperatorUpdate_CreatesMissingContact(t *testing.T) {
	svc, operators, contacts := newOperatorFixture(true)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	op, err := operators.Create(testCtx(), operator.New("ops@site.com", operator.RoleAdmin, string(hash)))
	require.NoError(t, err)
	require.Nil(t, op.ContactID())

	updated, err := svc.Update(testCtx(), op.ID(), services.UpdateOperatorParams{
		Name: "Operations",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ContactID())
	require.Equal(t, 1, contacts.count())
}

func TestOperatorUpdate_DuplicateContactEmail(t *testing.T) {
	svc, _, _ := newOperatorFixture(true)

	_, err := svc.Create(testCtx(), services.CreateOperatorParams{
		Handle:   "first@site.com",
		Password: "s3cret-pass",
		Role:     operator.RoleAgent,
	})
	require.NoError(t, err)

	second, err := svc.Create(testCtx(), services.CreateOperatorParams{
		Handle:   "second@site.com",
		Password: "s3cret-pass",
		Role:     operator.RoleAgent,
	})
	require.NoError(t, err)

	_, err = svc.Update(testCtx(), second.ID(), services.UpdateOperatorParams{
		Email: "first@site.com",
	})
	require.True(t, serrors.Is(err, serrors.KindConflict))
}

func TestOperatorUpdate_NotFound(t *testing.T) {
	svc, _, _ := newOperatorFixture(true)

	_, err := svc.Update(testCtx(), 404, services.UpdateOperatorParams{Name: "x"})
	require.True(t, serrors.Is(err, serrors.KindNotFound))
}

func TestOperatorDelete(t *testing.T) {
	svc, operators, _ := newOperatorFixture(true)

	op, err := svc.Create(testCtx(), services.CreateOperatorParams{
		Handle:   "ops@site.com",
		Password: "s3cret-pass",
		Role:     operator.RoleAdmin,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(testCtx(), op.ID()))
	_, err = operators.GetByID(testCtx(), op.ID())
	require.ErrorIs(t, err, operator.ErrNotFound)

	err = svc.Delete(testCtx(), op.ID())
	require.True(t, serrors.Is(err, serrors.KindNotFound))
}
