package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSizeByte, "byte %d at offset %d", 200, 0)

	if err.Code != ErrCodeInvalidSizeByte {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSizeByte)
	}

	if err.Message != "byte 200 at offset 0" {
		t.Errorf("Message = %v, want %v", err.Message, "byte 200 at offset 0")
	}

	expected := "INVALID_SIZE_BYTE: byte 200 at offset 0"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidInput, cause, "open input")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_INPUT: open input: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnsupported, "sparse6"),
			code:     ErrCodeUnsupported,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidBitByte, "test"),
			code:     ErrCodeInvalidSizeByte,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeFormatMismatch, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeFormatMismatch,
			expected: true,
		},
		{
			name:     "inner code of wrapped error",
			err:      Wrap(ErrCodeInvalidInput, New(ErrCodeInvalidMatrix, "loop at 2"), "line 4"),
			code:     ErrCodeInvalidMatrix,
			expected: true,
		},
		{
			name:     "inner code behind fmt wrapping",
			err:      Wrap(ErrCodeInvalidInput, fmt.Errorf("strict: %w", New(ErrCodeUnsupported, "sparse6")), "run"),
			code:     ErrCodeUnsupported,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("line 3: %w", New(ErrCodeNotASquare, "length 5")),
			code:     ErrCodeNotASquare,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInsufficientBits, "test"),
			expected: ErrCodeInsufficientBits,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidCharacter, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
