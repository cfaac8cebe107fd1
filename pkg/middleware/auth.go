package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/httpapi"
)

type tokenClaims struct {
	Handle string `json:"handle"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RequireOperator guards admin routes: it verifies the bearer token and puts
// the operator claims into the context.
func RequireOperator(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_MISSING_TOKEN", "missing bearer token", nil)
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims := &tokenClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_INVALID_TOKEN", "invalid or expired token", nil)
				return
			}

			operatorID, err := claims.GetSubject()
			if err != nil || operatorID == "" {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_INVALID_TOKEN", "invalid or expired token", nil)
				return
			}
			id, err := parseOperatorID(operatorID)
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "AUTH_INVALID_TOKEN", "invalid or expired token", nil)
				return
			}

			ctx := composables.WithOperator(r.Context(), &composables.OperatorClaims{
				OperatorID: id,
				Handle:     claims.Handle,
				Role:       claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole restricts a subtree to operators carrying the given role. It
// must run after RequireOperator.
func RequireRole(role string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := composables.UseOperator(r.Context())
			if err != nil || claims.Role != role {
				_ = httpapi.WriteError(w, http.StatusForbidden, "AUTH_FORBIDDEN", "insufficient role", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseOperatorID(subject string) (int64, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, jwt.ErrTokenInvalidSubject
	}
	return id, nil
}
