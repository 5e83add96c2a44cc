package faults

import (
	"errors"
	"testing"
)

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := NewTypedError(ValidationError, "invalid input", nil)
	if !IsCategory(err, ValidationError) {
		t.Fatalf("expected validation category match")
	}
	if IsCategory(err, NotFoundError) {
		t.Fatalf("expected not-found category mismatch")
	}

	wrapped := errors.New("wrap: " + err.Error())
	if IsCategory(wrapped, ValidationError) {
		t.Fatalf("plain wrapped string error must not match typed category")
	}

	joined := errors.Join(err, errors.New("other"))
	if !IsCategory(joined, ValidationError) {
		t.Fatalf("expected category match through errors.Join")
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	if _, ok := CategoryOf(nil); ok {
		t.Fatal("nil error must have no category")
	}
	if _, ok := CategoryOf(errors.New("plain")); ok {
		t.Fatal("plain error must have no category")
	}

	err := NewTypedError(PreconditionError, "no active order", nil)
	category, ok := CategoryOf(err)
	if !ok || category != PreconditionError {
		t.Fatalf("unexpected category: %v %v", category, ok)
	}
}

func TestTypedErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewTypedError(TransportError, "request failed", cause)
	if err.Error() != "request failed: connection refused" {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to unwrap")
	}

	bare := NewTypedError(ServerError, "", nil)
	if bare.Error() != string(ServerError) {
		t.Fatalf("unexpected bare error text: %q", bare.Error())
	}
}
