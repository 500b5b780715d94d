package apierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeInvalidAddress, "test message: %s", "value")

	if err.Code != CodeInvalidAddress {
		t.Errorf("Code = %v, want %v", err.Code, CodeInvalidAddress)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_ADDRESS: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(CodeNetwork, cause, "failed to fetch")

	if err.Code != CodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, CodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
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
			err:      New(CodeInvalidAddress, "test"),
			code:     CodeInvalidAddress,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(CodeInvalidAddress, "test"),
			code:     CodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(CodeNetwork, New(CodeInvalidAddress, "inner"), "outer"),
			code:     CodeNetwork,
			expected: true,
		},
		{
			name:     "fmt-wrapped error",
			err:      fmt.Errorf("context: %w", New(CodeKeyNotRegistered, "no key")),
			code:     CodeKeyNotRegistered,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     CodeInvalidAddress,
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
		name string
		err  error
		want Code
	}{
		{"typed error", New(CodeUnknownField, "bad field"), CodeUnknownField},
		{"status error", &StatusError{Status: 401, Message: "bad key"}, CodeAPI},
		{"wrapped status error", fmt.Errorf("lookup: %w", &StatusError{Status: 429, Message: "limit"}), CodeAPI},
		{"plain error", errors.New("plain"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	err := New(CodeInvalidAddress, "not an IPv4: %q", "abc")
	if got := UserMessage(err); got != `not an IPv4: "abc"` {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain error")
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Status: 429, Message: "usage limit reached"}

	expected := "API_ERROR: status 429: usage limit reached"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	var se *StatusError
	if !errors.As(error(err), &se) {
		t.Error("errors.As should match *StatusError")
	}
	if se.Status != 429 {
		t.Errorf("Status = %d, want 429", se.Status)
	}
}
