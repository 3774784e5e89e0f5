package errors

import (
	"errors"
	"strings"
)

var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInsufficientPermission = errors.New("insufficient permission")
	ErrDatabaseError          = errors.New("database error")
	ErrCacheError             = errors.New("cache error")
)

type Error struct {
	Err     error
	Message string
	Code    string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap annotates err with message; errors.Is still sees err and its chain.
func Wrap(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
		Code:    "INTERNAL_ERROR",
	}
}

// FieldError describes one offending input field. Loc is the path to the
// field, starting with where it was read from ("body", "header").
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError collects every field that failed validation for a request.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Add(loc []string, msg, typ string) {
	e.Fields = append(e.Fields, FieldError{Loc: loc, Msg: msg, Type: typ})
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, strings.Join(f.Loc, ".")+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
