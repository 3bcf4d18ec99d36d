package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := Wrap(internal, "failed")

	if err.Error() != "failed: boom" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
	if err.Kind != KindInternal {
		t.Fatalf("expected internal kind, got %s", err.Kind)
	}
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", http.StatusBadRequest)
	with := base.WithInternal(stdErrors.New("oops"))

	if with == base {
		t.Fatal("expected WithInternal to return a copy")
	}
	if base.Internal != nil {
		t.Fatal("expected original error to remain unchanged")
	}
	if with.Internal == nil {
		t.Fatal("expected internal error to be set")
	}
	if !stdErrors.Is(with, base) {
		t.Fatal("expected copies to match the sentinel by code")
	}
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	if out := FromError(appErr); out != appErr {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	raw := stdErrors.New("raw")
	out := FromError(raw)
	if out.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", out.Code)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}
}

func TestNewBadRequest(t *testing.T) {
	err := NewBadRequest("invalid payload")
	if err.Code != ErrBadRequest.Code {
		t.Fatalf("expected %s, got %s", ErrBadRequest.Code, err.Code)
	}
	if err.Message != "invalid payload" {
		t.Fatalf("unexpected message: %s", err.Message)
	}
	if err.StatusCode != ErrBadRequest.StatusCode {
		t.Fatalf("unexpected status: %d", err.StatusCode)
	}
}

func TestKindHelpers(t *testing.T) {
	notFound := New("THING_NOT_FOUND", "thing not found", http.StatusNotFound)
	wrapped := fmt.Errorf("outer: %w", notFound)

	if !IsNotFound(wrapped) {
		t.Fatal("expected wrapped not-found error to be detected")
	}
	if IsValidation(wrapped) {
		t.Fatal("not-found must not be reported as validation")
	}
	if !IsValidation(NewBadRequest("bad")) {
		t.Fatal("expected bad request to be a validation error")
	}
	if !IsInternal(stdErrors.New("driver exploded")) {
		t.Fatal("expected plain errors to be internal")
	}
	if IsInternal(nil) {
		t.Fatal("nil must not be internal")
	}
	if KindOf(nil) != "" {
		t.Fatal("expected empty kind for nil")
	}
}
