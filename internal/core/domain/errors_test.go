package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError("PL-TEST-0001", "test error")
	if got := err.Error(); got != "[PL-TEST-0001] test error" {
		t.Errorf("Error() = %q", got)
	}

	withDetails := err.WithDetails("more context")
	if got := withDetails.Error(); got != "[PL-TEST-0001] test error: more context" {
		t.Errorf("Error() = %q", got)
	}

	// WithDetails must not mutate the original.
	if err.Details != "" {
		t.Error("WithDetails should return a copy")
	}
}

func TestDomainError_Is(t *testing.T) {
	err := ErrSessionNotFound.WithDetails("id plss-x")

	if !errors.Is(err, ErrSessionNotFound) {
		t.Error("errors.Is should match by code")
	}
	if errors.Is(err, ErrSessionConflict) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrInternalServer.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIsDomainError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrSessionNotFound)

	if !IsDomainError(err, "PL-SESS-4040") {
		t.Error("IsDomainError should see through wrapping")
	}
	if !IsDomainError(err, "") {
		t.Error("empty code should match any DomainError")
	}
	if IsDomainError(errors.New("plain"), "") {
		t.Error("plain errors are not domain errors")
	}

	if got := GetErrorCode(err); got != "PL-SESS-4040" {
		t.Errorf("GetErrorCode() = %q", got)
	}
	if got := GetErrorCode(errors.New("plain")); got != "" {
		t.Errorf("GetErrorCode(plain) = %q, want empty", got)
	}
}
