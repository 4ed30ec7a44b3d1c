// Package ice ("internal compiler errors") provides the two-tier error type
// used throughout the lexer, parser, and TAC generator: an Error() string
// meant for logs/tests, and an optional human-facing message meant for a
// CLI user who does not care about internal state names.
package ice

import (
	"errors"
	"fmt"
)

// Err is a compiler error with both a technical message and, optionally, a
// friendlier human-facing one. Most call sites only need Error(); the
// Human() form is for surfaces that print diagnostics to an end user.
type Err struct {
	msg   string
	human string
	wrap  error
}

// New creates an Err with only a technical message.
func New(msg string) error {
	return &Err{msg: msg}
}

// Newf creates an Err with only a technical message, formatted.
func Newf(format string, args ...interface{}) error {
	return &Err{msg: fmt.Sprintf(format, args...)}
}

// WithHuman creates an Err carrying both a technical message and a
// human-facing one.
func WithHuman(msg, human string) error {
	return &Err{msg: msg, human: human}
}

// Wrap creates an Err that wraps an underlying error, adding a technical
// message. errors.Unwrap will retrieve the original error.
func Wrap(msg string, wrapped error) error {
	return &Err{msg: msg, wrap: wrapped}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(wrapped error, format string, args ...interface{}) error {
	return &Err{msg: fmt.Sprintf(format, args...), wrap: wrapped}
}

func (e *Err) Error() string {
	if e.wrap != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.wrap)
	}
	return e.msg
}

// Human returns the human-facing message if one was set, otherwise falls
// back to the technical message.
func (e *Err) Human() string {
	if e.human != "" {
		return e.human
	}
	return e.msg
}

func (e *Err) Unwrap() error {
	return e.wrap
}

// Human returns the human-facing message of err if it is (or wraps) an
// *Err, otherwise err's own Error() string.
func Human(err error) string {
	if err == nil {
		return ""
	}
	var e *Err
	if errors.As(err, &e) {
		return e.Human()
	}
	return err.Error()
}
