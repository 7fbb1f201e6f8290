package errors

import (
	"net/http"

	"quill/internal/errors"
)

// Kind classifies an error by how callers must react to it.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindConflict        Kind = "conflict"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindInternal        Kind = "internal"
)

// KindOf returns the kind of the first AppError in err's chain.
// Errors that carry no AppError are internal.
func KindOf(err error) Kind {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return KindInternal
	}

	switch appErr.HTTPCode() {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindInternal
	}
}
