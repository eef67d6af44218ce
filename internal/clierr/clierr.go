// Package clierr defines the coded error taxonomy shared by every stage of
// the template pipeline. Callers match on codes with errors.Is or Is rather
// than on message text.
package clierr

import (
	"errors"
	"fmt"
)

// Code identifies an error category.
type Code string

const (
	Unknown           Code = "UNKNOWN"
	Config            Code = "CONFIG"
	Version           Code = "VERSION"
	Registry          Code = "REGISTRY"
	NotFound          Code = "NOT_FOUND"
	NoTemplates       Code = "NO_TEMPLATES"
	Install           Code = "INSTALL"
	Render            Code = "RENDER"
	CommandNotAllowed Code = "COMMAND_NOT_ALLOWED"
	Command           Code = "COMMAND"
	MissingEntryPoint Code = "MISSING_ENTRY_POINT"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with a code and message. It returns nil when err is nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Wrapped: err}
}

// Wrapf wraps err with a code and a formatted message.
func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

// CodeOf returns the code of the outermost *Error in err's chain, or Unknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}
