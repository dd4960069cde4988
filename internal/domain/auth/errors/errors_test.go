package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}
	// WrapInternal не пробрасывает причину через %w
	if IsInvalidArgument(wrapped) {
		t.Fatal("internal wrap must hide the cause")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation(
		FieldError{Path: "email", Message: "must be a valid email"},
		FieldError{Path: "password", Message: "too weak"},
	)
	if !IsInvalidArgument(err) {
		t.Fatal("validation error must unwrap to ErrInvalidArgument")
	}

	outer := fmt.Errorf("register: %w", err)
	fields := Fields(outer)
	if len(fields) != 2 || fields[0].Path != "email" {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	if Fields(errors.New("plain")) != nil {
		t.Fatal("plain error has no fields")
	}
}
