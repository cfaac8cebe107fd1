package composables

import (
	"context"
	"errors"

	"github.com/inmovista/inmovista/pkg/constants"
)

var ErrNoOperator = errors.New("no authenticated operator in context")

// OperatorClaims is what the auth middleware extracts from a bearer token.
type OperatorClaims struct {
	OperatorID int64
	Handle     string
	Role       string
}

func WithOperator(ctx context.Context, claims *OperatorClaims) context.Context {
	return context.WithValue(ctx, constants.OperatorKey, claims)
}

func UseOperator(ctx context.Context) (*OperatorClaims, error) {
	claims, ok := ctx.Value(constants.OperatorKey).(*OperatorClaims)
	if !ok || claims == nil {
		return nil, ErrNoOperator
	}
	return claims, nil
}

// UseOperatorID returns the calling operator's stable identifier, or zero for
// anonymous callers.
func UseOperatorID(ctx context.Context) int64 {
	claims, err := UseOperator(ctx)
	if err != nil {
		return 0
	}
	return claims.OperatorID
}
