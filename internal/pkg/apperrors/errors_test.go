package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorsWrapTaxonomy(t *testing.T) {
	tests := []struct {
		err     error
		target  error
		message string
	}{
		{ErrEventNotFound, ErrResourceNotFound, "Event not found"},
		{ErrConversationNotFound, ErrResourceNotFound, "Conversation not found"},
		{ErrEmailAlreadyExists, ErrConflict, "User already exists"},
		{ErrAlreadyRegistered, ErrConflict, "You are already registered for this event"},
		{ErrEventFull, ErrCapacityExceeded, "Event is full"},
	}
	for _, tt := range tests {
		wrapped := fmt.Errorf("repository: %w", tt.err)
		if !errors.Is(wrapped, tt.target) || !errors.Is(wrapped, tt.err) {
			t.Errorf("%q does not match its sentinels", tt.message)
		}
		if got := MessageOf(wrapped); got != tt.message {
			t.Errorf("MessageOf = %q, want %q", got, tt.message)
		}
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("capacity", "Capacity must be at least 1")
	var ce *CustomError
	if !errors.As(err, &ce) || !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("unexpected error %#v", err)
	}
	if ce.Details["field"] != "capacity" {
		t.Errorf("details = %v", ce.Details)
	}

	if err := NewValidationError("", "bad"); err.(*CustomError).Details != nil {
		t.Error("no field should leave details empty")
	}
}
