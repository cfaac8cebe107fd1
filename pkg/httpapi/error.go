package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

func statusForKind(kind serrors.Kind) int {
	switch kind {
	case serrors.KindValidation:
		return http.StatusUnprocessableEntity
	case serrors.KindNotFound:
		return http.StatusNotFound
	case serrors.KindConflict:
		return http.StatusConflict
	case serrors.KindRateLimited:
		return http.StatusTooManyRequests
	case serrors.KindUpstream:
		return http.StatusBadGateway
	case serrors.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError maps a typed service failure onto its HTTP status. Anything
// untyped is logged and collapsed to a generic 500 so internals never leak.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) error {
	var base *serrors.Base
	if errors.As(err, &base) {
		return WriteError(w, statusForKind(base.Kind), base.Code, base.Message, nil)
	}
	composables.UseLogger(r.Context()).WithError(err).Error("unhandled service error")
	return WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
