package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindPrecondition is detected locally; no request was sent.
	KindPrecondition Kind = iota + 1
	// KindTransport covers timeouts, connection failures and unreadable bodies.
	KindTransport
	// KindApplication means the server answered with a code the caller does not accept.
	KindApplication
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by every client call that fails.
type Error struct {
	Kind    Kind
	Status  int
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrMissingToken is the precondition error for unauthenticated calls.
	ErrMissingToken = &Error{Kind: KindPrecondition, Message: "missing bearer token"}
	// ErrMissingUserID is the precondition error for teacher-scoped lists without a user id.
	ErrMissingUserID = &Error{Kind: KindPrecondition, Message: "missing user id"}
)

// KindOf reports the kind of err, or 0 when err is not a client error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is a client error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func preconditionError(message string) *Error {
	return &Error{Kind: KindPrecondition, Message: message}
}
