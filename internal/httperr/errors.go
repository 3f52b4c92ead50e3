package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure on a single connection. Every kind is terminal
// for the connection that produced it.
type Kind int

const (
	Unknown Kind = iota
	NoBody
	NoProtocol
	InvalidProtocol
	InvalidHeader
	IO
)

func (k Kind) Error() string {
	switch k {
	case NoBody:
		return "missing header/body separator"
	case NoProtocol:
		return "missing request line"
	case InvalidProtocol:
		return "malformed request line"
	case InvalidHeader:
		return "malformed header line"
	case IO:
		return "i/o failure"
	default:
		return fmt.Sprintf("unknown http error: %d", int(k))
	}
}

func (k Kind) String() string {
	switch k {
	case NoBody:
		return "NoBody"
	case NoProtocol:
		return "NoProtocol"
	case InvalidProtocol:
		return "InvalidProtocol"
	case InvalidHeader:
		return "InvalidHeader"
	case IO:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Error pairs a Kind with the detail that triggered it.
type Error struct {
	Kind       Kind
	detail     string
	underlying error
}

var (
	ErrNoBody          = &Error{Kind: NoBody}
	ErrNoProtocol      = &Error{Kind: NoProtocol}
	ErrInvalidProtocol = &Error{Kind: InvalidProtocol}
	ErrInvalidHeader   = &Error{Kind: InvalidHeader}
	ErrIO              = &Error{Kind: IO}
)

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.detail)
	}
	if e.underlying != nil {
		return fmt.Sprintf("%s: %v", msg, e.underlying)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.underlying
}

// Is reports a match on Kind alone, so errors.Is(err, ErrNoBody) holds for
// any NoBody error regardless of its detail.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case *Error:
		return t.Kind == e.Kind
	case Kind:
		return t == e.Kind
	}
	return false
}

// New builds a parse error. detail is the offending input, if any.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, detail: detail}
}

// Wrap builds an IO error around a platform error. A nil err yields nil.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: IO, detail: op, underlying: err}
}

// KindOf returns the Kind carried by err, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
