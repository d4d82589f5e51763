package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Numeric envelope codes shared by the API and its clients. Code 0 is success.
const (
	CodeOK                = 0
	CodeValidation        = 10
	CodePrecondition      = 11
	CodeIllegalTransition = 12
	CodeConflict          = 13
	CodeNotFound          = 20
	CodeLessonToggled     = 22
	CodeModuleDeleted     = 31
	CodeUnauthorized      = 40
	CodeForbidden         = 41
	CodeInternal          = 50
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Envelope int    `json:"-"`
	Err      error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so cloned sentinels still compare equal.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, envelope int, message string) *Error {
	return &Error{Code: code, Status: status, Envelope: envelope, Message: message}
}

// Wrap attaches context to an existing error, inheriting the envelope code of the template.
func Wrap(err error, template *Error, message string) *Error {
	return &Error{Code: template.Code, Status: template.Status, Envelope: template.Envelope, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, CodeNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, CodeForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, CodeConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, CodePrecondition, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, CodeValidation, "validation failed")
	ErrIllegalTransition  = New("ILLEGAL_TRANSITION", http.StatusConflict, CodeIllegalTransition, "transition not allowed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, CodeInternal, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, CodeNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
