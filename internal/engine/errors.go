package engine

import (
	"errors"
	"fmt"
)

var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrNullDereference = errors.New("null pointer dereference")
)

// UsageError reports a caller bug such as an undefined join or an
// operator the active domain does not implement.
type UsageError struct {
	Domain string
	Op     string
	Reason string
}

func (e *UsageError) Error() string {
	if e.Domain == "" {
		return fmt.Sprintf("lamp fail: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("lamp fail: %s %s: %s", e.Domain, e.Op, e.Reason)
}

// Fault is a defect of the analyzed program observed on the current path.
type Fault struct {
	Op  string
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %v", f.Op, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// Fail panics with a *UsageError.
func Fail(domain, op, reason string) {
	panic(&UsageError{Domain: domain, Op: op, Reason: reason})
}

// Unsupported panics for a forward operator missing from a domain.
func Unsupported(domain string, op fmt.Stringer) {
	Fail(domain, op.String(), "unsupported")
}

// Raise panics with a *Fault wrapping err.
func Raise(op string, err error) {
	panic(&Fault{Op: op, Err: err})
}
