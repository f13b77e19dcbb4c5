package opython

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Every error returned by the package matches one of these
// with errors.Is.
var (
	ErrImport      = errors.New("ImportError")
	ErrAttribute   = errors.New("AttributeError")
	ErrRuntime     = errors.New("RuntimeError")
	ErrType        = errors.New("TypeError")
	ErrArity       = errors.New("ArityError")
	ErrNotRunning  = errors.New("python interpreter is not running")
	ErrStartFailed = errors.New("python interpreter failed to start")
	ErrStale       = errors.New("python object belongs to a finalized interpreter")
	ErrRecursion   = errors.New("maximum marshalling depth exceeded")
	ErrClosed      = errors.New("python object is closed")
)

// Error is a Python exception surfaced in Go. Type is the exception class
// name, Message its str() and Traceback the formatted traceback.
type Error struct {
	err       error
	Type      string
	Message   string
	Traceback string

	// Exception holds the exception instance, nil when it was synthesized
	// on the Go side
	Exception *Object
}

// Raise creates an Error of the given category
func Raise(err error, typ, msg string) error {
	return &Error{err: err, Type: typ, Message: msg}
}

// Raisef creates an Error of the given category with formatted message
func Raisef(err error, typ, format string, args ...interface{}) error {
	return Raise(err, typ, fmt.Sprintf(format, args...))
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Type
	}
	return e.Type + ": " + e.Message
}

// String implements stringer interface
func (e *Error) String() string {
	return e.Error()
}

// Unwrap returns error category
func (e *Error) Unwrap() error {
	return e.err
}

// Is matches errors by category, or by Python exception name for targets
// created with Raise
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Type == e.Type
	}
	return false
}

// Full returns the message followed by the Python traceback
func (e *Error) Full() string {
	if e.Traceback == "" {
		return e.Error()
	}
	return strings.TrimRight(e.Traceback, "\n")
}

func errorHandler(err *error) {
	if r := recover(); r != nil {
		switch x := r.(type) {
		case string:
			*err = errors.New(x)
		case error:
			*err = x
		default:
			*err = fmt.Errorf("unknown error: %v", x)
		}
	}
}
