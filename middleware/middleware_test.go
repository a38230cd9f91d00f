// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/apperr"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/models"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/session"
)

func TestWithLogging(t *testing.T) {
	handlerCalled := false
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if !handlerCalled {
		t.Error("Expected wrapped handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, models.MessageResponse{Message: "done"})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), `"message":"done"`) {
		t.Errorf("Unexpected body: %s", w.Body.String())
	}
}

func TestErrorFrom(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperr.New(apperr.Validation, "Please fill all fields."), http.StatusBadRequest, "Please fill all fields."},
		{"auth", apperr.New(apperr.Auth, "Incorrect password."), http.StatusUnauthorized, "Incorrect password."},
		{"conflict", apperr.New(apperr.Conflict, "Already exists."), http.StatusConflict, "Already exists."},
		{"not found", apperr.New(apperr.NotFound, "Poll not found."), http.StatusNotFound, "Poll not found."},
		{"permission", apperr.New(apperr.Permission, "Not yours."), http.StatusForbidden, "Not yours."},
		{"internal", errors.New("disk exploded"), http.StatusInternalServerError, "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFrom(w, tt.err)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.message) {
				t.Errorf("Expected message %q in body: %s", tt.message, w.Body.String())
			}
			// Internal causes never leak to the client
			if strings.Contains(w.Body.String(), "disk exploded") {
				t.Errorf("Internal error leaked: %s", w.Body.String())
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	tokens := session.NewTokens()
	sess := &session.Session{User: models.User{ID: "u1"}}
	token, err := tokens.Issue(sess)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var gotSess *session.Session
	handler := RequireSession(tokens, func(w http.ResponseWriter, r *http.Request, s *session.Session) {
		gotSess = s
		w.WriteHeader(http.StatusOK)
	})

	// No header
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/test", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	// Unknown token
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Session-Token", "bogus")
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for unknown token, got %d", w.Code)
	}

	// Valid token
	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Session-Token", token)
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for valid token, got %d", w.Code)
	}
	if gotSess != sess {
		t.Error("Expected the issued session to reach the handler")
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8081" {
		t.Errorf("Expected origin echoed back, got %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "X-Session-Token") {
		t.Error("Expected X-Session-Token in allowed headers")
	}

	// Preflight short-circuits
	req = httptest.NewRequest("OPTIONS", "/test", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 on preflight, got %d", w.Code)
	}
}
