// Package apperr carries an error kind alongside the operation that failed and
// its underlying cause, so the HTTP layer can pick a status code without the
// lower layers deciding on messages.
package apperr

import (
	"context"
	"errors"
)

// Kind classifies a failure.
type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Timeout
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Timeout:
		return "timeout"
	default:
		return "internal"
	}
}

// Error is a failed operation with its kind and cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an Error with an explicit kind.
func E(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Wrap attaches op to err. An inner kind is kept, a context deadline becomes
// Timeout, and anything else is Internal. Wrap returns nil for a nil err.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOf(err), Op: op, Err: err}
}

// KindOf reports the kind of the outermost Error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return Internal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	return Internal
}

// Is reports whether err is of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
