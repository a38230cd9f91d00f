// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
	}{
		{Validation, http.StatusBadRequest},
		{Auth, http.StatusUnauthorized},
		{Conflict, http.StatusConflict},
		{NotFound, http.StatusNotFound},
		{Permission, http.StatusForbidden},
		{Kind(0), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.kind.Status(); got != tt.status {
			t.Errorf("Kind %d: expected status %d, got %d", tt.kind, tt.status, got)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(Validation, "Please fill all fields.")
	if err.Error() != "Please fill all fields." {
		t.Errorf("Unexpected message: %q", err.Error())
	}

	cause := errors.New("disk full")
	wrapped := Wrap(NotFound, "Poll not found.", cause)
	if wrapped.Error() != "Poll not found.: disk full" {
		t.Errorf("Unexpected message: %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Expected wrapped cause to be reachable via errors.Is")
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(New(Auth, "nope")) != Auth {
		t.Error("Expected Auth kind")
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("Expected zero kind for plain errors")
	}
	if KindOf(nil) != 0 {
		t.Error("Expected zero kind for nil")
	}

	// Kind survives fmt wrapping
	err := fmt.Errorf("saving: %w", New(Permission, "not yours"))
	if !IsKind(err, Permission) {
		t.Error("Expected kind to survive wrapping")
	}
}
