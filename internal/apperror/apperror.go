// Package apperror defines the error taxonomy shared by the store, the tenancy
// guard and the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes
const (
	EUnauthenticated = "unauthenticated"
	EForbidden       = "forbidden"
	ENotFound        = "not found"
	EConflict        = "conflict"
	EInvalid         = "invalid"
	EInternal        = "internal error"
)

// Error carries a code for automated handling, a message safe to show to the
// caller, and optionally the underlying cause.
type Error struct {
	Code string
	Msg  string
	Err  error
}

// Error implements the error interface by writing out the recursive messages.
func (e *Error) Error() string {
	if e.Msg != "" && e.Err != nil {
		var b strings.Builder
		b.WriteString(e.Msg)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
		return b.String()
	} else if e.Msg != "" {
		return e.Msg
	} else if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("<%s>", e.Code)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthenticated is a missing, invalid or expired credential.
func Unauthenticated(msg string) *Error {
	return &Error{Code: EUnauthenticated, Msg: msg}
}

// Forbidden is an authenticated caller lacking the role, or an inactive account.
func Forbidden(msg string) *Error {
	return &Error{Code: EForbidden, Msg: msg}
}

// NotFound is an absent record, or one outside the caller's organization.
func NotFound(entity string) *Error {
	return &Error{Code: ENotFound, Msg: entity + " not found"}
}

// Conflict is a uniqueness or referential violation.
func Conflict(msg string) *Error {
	return &Error{Code: EConflict, Msg: msg}
}

// Invalid is a malformed payload or an out-of-range field.
func Invalid(msg string, err error) *Error {
	return &Error{Code: EInvalid, Msg: msg, Err: err}
}

// Internal wraps a storage or infrastructure failure.
func Internal(msg string, err error) *Error {
	return &Error{Code: EInternal, Msg: msg, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or EInternal.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return EInternal
}

// MessageOf returns the caller-facing message for err. Internal causes are not exposed.
func MessageOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "internal server error"
	}
	if e.Code == EInternal {
		if e.Msg != "" {
			return e.Msg
		}
		return "internal server error"
	}
	if e.Code == EInvalid && e.Err != nil {
		return e.Error()
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.Code
}

// Is reports whether err carries code.
func Is(err error, code string) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps a code to its HTTP status.
func HTTPStatus(code string) int {
	switch code {
	case EUnauthenticated:
		return http.StatusUnauthorized
	case EForbidden:
		return http.StatusForbidden
	case ENotFound:
		return http.StatusNotFound
	case EConflict:
		return http.StatusConflict
	case EInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
