package apperr

import (
	"errors"
	"fmt"
)

// Kind — стабильный класс ошибки, по нему API-слой выбирает HTTP-статус.
type Kind string

const (
	Validation       Kind = "validation"
	NotFound         Kind = "not_found"
	PermissionDenied Kind = "permission_denied"
	Conflict         Kind = "conflict"
	Internal         Kind = "internal"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is — позволяет сверять ошибки по Kind через errors.Is(err, apperr.E(kind, "")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf — Kind ошибки; для всего, что не *Error, возвращает Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Маркеры для errors.Is по классам.
var (
	ErrValidation       = E(Validation, "validation error")
	ErrNotFound         = E(NotFound, "not found")
	ErrPermissionDenied = E(PermissionDenied, "permission denied")
	ErrConflict         = E(Conflict, "conflict")
)
