package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed collection request.
type Kind string

const (
	KindTransport Kind = "transport" // request never got a response
	KindStatus    Kind = "status"    // response with an unexpected status
	KindDecode    Kind = "decode"    // response body could not be parsed
)

// Error is the single error type returned by Client. Error() is the
// message shown to the user.
type Error struct {
	Op      string // e.g. "GET /api/persons"
	Kind    Kind
	Status  int
	Message string // server-provided message, if any
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Message != "":
		return e.Message
	case e.Kind == KindStatus:
		return fmt.Sprintf("%s %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + " failed"
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}
