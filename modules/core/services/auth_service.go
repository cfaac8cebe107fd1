package services

import (
	"context"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	"github.com/inmovista/inmovista/pkg/composables"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Operator  operator.Operator
	ContactID *int64
}

// AuthService checks credentials and mints bearer tokens. A successful login
// also backfills the operator's contact link when the schema supports it.
type AuthService struct {
	operators      operator.Repository
	reconciliation *ReconciliationService
	secret         []byte
	duration       time.Duration
}

func NewAuthService(
	operators operator.Repository,
	reconciliation *ReconciliationService,
	secret string,
	duration time.Duration,
) *AuthService {
	return &AuthService{
		operators:      operators,
		reconciliation: reconciliation,
		secret:         []byte(secret),
		duration:       duration,
	}
}

func (s *AuthService) Login(ctx context.Context, handle, password string) (Session, error) {
	op, err := s.operators.GetByHandle(ctx, handle)
	if errors.Is(err, operator.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if !op.Active() {
		return Session{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash()), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	// Best-effort backfill in its own transaction: a reconciliation failure
	// must not block the login, it only leaves the link for a later attempt.
	contactID := op.ContactID()
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		id, err := s.reconciliation.EnsureContactLink(txCtx, op)
		if err != nil {
			return err
		}
		contactID = id
		return nil
	})
	if err != nil {
		composables.UseLogger(ctx).
			WithError(err).
			WithField("operator_id", op.ID()).
			Warn("contact reconciliation failed on login")
		contactID = op.ContactID()
	}

	token, expiresAt, err := s.issueToken(op)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Operator:  op,
		ContactID: contactID,
	}, nil
}

func (s *AuthService) issueToken(op operator.Operator) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.duration)
	claims := jwt.MapClaims{
		"sub":    strconv.FormatInt(op.ID(), 10),
		"handle": op.Handle(),
		"role":   string(op.Role()),
		"exp":    expiresAt.Unix(),
		"iat":    time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign token")
	}
	return token, expiresAt, nil
}
