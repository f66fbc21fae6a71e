package domain

import (
	"errors"
	"net/http"
)

// Kind classifies an application error. Every kind maps to exactly one HTTP
// status, assigned at the server's translation point.
type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindDuplicate
	KindServiceUnavailable
	KindUpstream
	KindControlled
)

// Error is the single error shape crossing handler, store, and client
// boundaries. Type is the error_type label recorded in the metrics registry;
// Detail is the human-readable string returned to the caller.
type Error struct {
	Kind   Kind
	Type   string
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindDuplicate:
		return http.StatusBadRequest
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Type: "not_found", Detail: detail}
}

func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Type: "validation", Detail: detail}
}

func Duplicate(detail string) *Error {
	return &Error{Kind: KindDuplicate, Type: "duplicate", Detail: detail}
}

func ServiceUnavailable(detail string) *Error {
	return &Error{Kind: KindServiceUnavailable, Type: "service_unavailable", Detail: detail}
}

func Upstream(detail string) *Error {
	return &Error{Kind: KindUpstream, Type: "upstream_error", Detail: detail}
}

// Cascade marks an upstream failure deliberately re-surfaced by the calling
// service. Same 500 as Upstream, distinct error_type.
func Cascade(detail string) *Error {
	return &Error{Kind: KindUpstream, Type: "cascade_error", Detail: detail}
}

func Controlled(detail string) *Error {
	return &Error{Kind: KindControlled, Type: "controlled_500", Detail: detail}
}

// AsError unwraps err into a *Error if it carries one.
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
