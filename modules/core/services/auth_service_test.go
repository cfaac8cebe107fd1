package services_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	"github.com/inmovista/inmovista/modules/core/services"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T, capability bool) (*services.AuthService, *operatorRepo, *contactRepo) {
	t.Helper()
	operators := newOperatorRepo()
	contacts := newContactRepo()
	reconciliation := services.NewReconciliationService(operators, contacts, capsWith(capability))
	auth := services.NewAuthService(operators, reconciliation, testSecret, time.Hour)
	return auth, operators, contacts
}

func seedOperator(t *testing.T, operators *operatorRepo, handle, password string) operator.Operator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	op, err := operators.Create(testCtx(), operator.New(handle, operator.RoleAdmin, string(hash)))
	require.NoError(t, err)
	return op
}

func TestLogin_BackfillsContactLink(t *testing.T) {
	auth, operators, contacts := newAuthFixture(t, true)
	op := seedOperator(t, operators, "ops@site.com", "s3cret-pass")

	session, err := auth.Login(testCtx(), "ops@site.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.NotNil(t, session.ContactID)

	require.Equal(t, 1, contacts.count())
	c, err := contacts.GetByID(testCtx(), *session.ContactID)
	require.NoError(t, err)
	require.Equal(t, "ops@site.com", c.Email())
	require.Equal(t, "ops", c.Name())

	linked, err := operators.GetByID(testCtx(), op.ID())
	require.NoError(t, err)
	require.NotNil(t, linked.ContactID())
	require.Equal(t, *session.ContactID, *linked.ContactID())
}

func TestLogin_TokenClaims(t *testing.T) {
	auth, operators, _ := newAuthFixture(t, true)
	seedOperator(t, operators, "ops@site.com", "s3cret-pass")

	session, err := auth.Login(testCtx(), "ops@site.com", "s3cret-pass")
	require.NoError(t, err)

	parsed, err := jwt.Parse(session.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "ops@site.com", claims["handle"])
	require.Equal(t, "admin", claims["role"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth, operators, contacts := newAuthFixture(t, true)
	seedOperator(t, operators, "ops@site.com", "s3cret-pass")

	_, err := auth.Login(testCtx(), "ops@site.com", "wrong")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = auth.Login(testCtx(), "nobody@site.com", "s3cret-pass")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Failed logins never reconcile.
	require.Equal(t, 0, contacts.count())
}

func TestLogin_InactiveOperator(t *testing.T) {
	auth, operators, _ := newAuthFixture(t, true)
	op := seedOperator(t, operators, "ops@site.com", "s3cret-pass")
	require.NoError(t, operators.Update(testCtx(), op.WithActive(false)))

	_, err := auth.Login(testCtx(), "ops@site.com", "s3cret-pass")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogin_CapabilityAbsentSkipsBackfill(t *testing.T) {
	auth, operators, contacts := newAuthFixture(t, false)
	seedOperator(t, operators, "ops@site.com", "s3cret-pass")

	session, err := auth.Login(testCtx(), "ops@site.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Nil(t, session.ContactID)
	require.Equal(t, 0, contacts.count())
}
