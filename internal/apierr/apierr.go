// Package apierr defines the error body shared by the API and its client.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// Status maps a kind to its HTTP status. Conflicts answer 400: clients of the
// API already treat a duplicate code or username as a bad request.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`

	// HTTPStatus overrides Kind.Status() when non-zero.
	HTTPStatus int `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Status() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return e.Kind.Status()
}

// Body is the JSON envelope written on failures.
type Body struct {
	Error *Error `json:"error"`
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func Internal(msg string) *Error   { return &Error{Kind: KindInternal, Message: msg} }

// WithStatus returns a copy of e answered with the given status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.HTTPStatus = status
	return &cp
}

// KindOf reports the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
