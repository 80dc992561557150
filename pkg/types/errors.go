package types

import "fmt"

// ErrorCode represents a leetcase error code.
type ErrorCode string

// Error codes, grouped by the stage that raises them.
const (
	// F0xxx: Format errors (fatal for the current test case)
	ErrUnbalancedBrackets ErrorCode = "F0101"
	ErrLengthMismatch     ErrorCode = "F0102"
	ErrUnexpectedEnd      ErrorCode = "F0103"
	ErrInvalidDescriptor  ErrorCode = "F0201"
	ErrInvalidSignature   ErrorCode = "F0202"
	ErrSignatureNotFound  ErrorCode = "F0203"

	// D0xxx: Decode errors (elements are dropped, decoding continues)
	ErrScalarParse     ErrorCode = "D0101"
	ErrUnsupportedType ErrorCode = "D0102"
	ErrShapeMismatch   ErrorCode = "D0103"

	// I0xxx: Invocation errors
	ErrInvocation    ErrorCode = "I0101"
	ErrArgumentType  ErrorCode = "I0102"
	ErrArgumentCount ErrorCode = "I0103"
	ErrUnknownMethod ErrorCode = "I0201"
	ErrNoReceiver    ErrorCode = "I0202"
	ErrBinding       ErrorCode = "I0203"

	// C0xxx: Comparison errors (never fatal)
	ErrMismatch ErrorCode = "C0101"
)

// IsFormat reports whether the code belongs to the format error family.
func (c ErrorCode) IsFormat() bool {
	return len(c) > 0 && c[0] == 'F'
}

// Error represents a structured leetcase error.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Err      error
}

// NewError creates a new leetcase error.
// A negative position means the error is not tied to an input offset.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Errorf creates a new error without position information.
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...), -1)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Token != "" {
		msg = fmt.Sprintf("%s (token %q)", msg, e.Token)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code, so that
// errors.Is(err, types.Errorf(types.ErrNoReceiver, "")) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// CodeOf extracts the code of a leetcase error, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// Is reports whether err carries code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
