// Package errors provides the structured error taxonomy for g6conv.
//
// Every failure produced by the codec carries a machine-readable [Code] so
// callers can tell a malformed size prefix from a truncated bit stream
// without parsing messages. All decode errors are scoped to a single input
// line; the caller decides whether to skip, log, or abort.
//
// # Error Codes
//
// Codec codes describe why a line could not be decoded:
//   - INVALID_SIZE_BYTE: a size-prefix byte outside [63,126], or a truncated prefix
//   - INVALID_BIT_BYTE: a bit-packed byte outside [63,126]
//   - INSUFFICIENT_BITS: fewer bits than the adjacency matrix needs
//   - NOT_A_SQUARE: a flat line whose length has no integer square root
//   - INVALID_CHARACTER: a flat line containing something other than 0 or 1
//   - INVALID_MATRIX: an undirected matrix that is asymmetric or has loops
//   - FORMAT_MISMATCH: an explicit format whose prefix the line contradicts
//   - UNSUPPORTED: a recognized format that has no decoder (sparse6)
//
// # Usage
//
//	g, err := graph6.Decode(line, graph6.FormatAuto)
//	if errors.Is(err, errors.ErrCodeUnsupported) {
//	    // sparse6 input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a failure class. Codes are stable and appear in CLI
// logs and in the "code" field of server responses.
type Code string

const (
	// Codec failures, always scoped to one input line.
	ErrCodeInvalidSizeByte  Code = "INVALID_SIZE_BYTE"
	ErrCodeInvalidBitByte   Code = "INVALID_BIT_BYTE"
	ErrCodeInsufficientBits Code = "INSUFFICIENT_BITS"
	ErrCodeNotASquare       Code = "NOT_A_SQUARE"
	ErrCodeInvalidCharacter Code = "INVALID_CHARACTER"
	ErrCodeInvalidMatrix    Code = "INVALID_MATRIX"
	ErrCodeFormatMismatch   Code = "FORMAT_MISMATCH"
	ErrCodeUnsupported      Code = "UNSUPPORTED"

	// Bad options, unreadable files and oversized input.
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a [Code] with a message and, optionally, the error that
// caused it.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message" or "CODE: message: cause".
func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a Sprintf-formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like [New] but records cause, which stays reachable through
// errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code. A codec
// failure wrapped as INVALID_INPUT therefore matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its
// code prefix, or err.Error() for foreign errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
