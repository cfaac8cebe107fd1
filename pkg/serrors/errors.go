package serrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the HTTP layer. Every error the services hand
// back to a controller is either one of these or an internal error.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindConflict    Kind = "CONFLICT"
	KindRateLimited Kind = "RATE_LIMITED"
	KindUpstream    Kind = "UPSTREAM_UPLOAD"
	KindUnavailable Kind = "UNAVAILABLE"
)

type Base struct {
	Code    string
	Kind    Kind
	Message string
	cause   error
}

func (e *Base) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Base) Unwrap() error { return e.cause }

func NewError(code string, kind Kind, message string) *Base {
	return &Base{Code: code, Kind: kind, Message: message}
}

func Validation(code, message string) *Base {
	return &Base{Code: code, Kind: KindValidation, Message: message}
}

func NotFound(code, message string) *Base {
	return &Base{Code: code, Kind: KindNotFound, Message: message}
}

func Conflict(code, message string) *Base {
	return &Base{Code: code, Kind: KindConflict, Message: message}
}

func RateLimited(code, message string) *Base {
	return &Base{Code: code, Kind: KindRateLimited, Message: message}
}

func Upstream(code, message string, cause error) *Base {
	return &Base{Code: code, Kind: KindUpstream, Message: message, cause: cause}
}

func Unavailable(code, message string, cause error) *Base {
	return &Base{Code: code, Kind: KindUnavailable, Message: message, cause: cause}
}

func KindOf(err error) (Kind, bool) {
	var base *Base
	if errors.As(err, &base) {
		return base.Kind, true
	}
	return "", false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
