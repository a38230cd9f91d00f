// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/models"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/repo"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/session"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/store"
)

// TestPassword is the password every seeded test user gets.
const TestPassword = "hunter2-but-longer"

// SetupTestStore creates a fresh local store in a per-test temp directory.
func SetupTestStore(t *testing.T) *store.Local {
	t.Helper()

	st, err := store.OpenLocal(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return st
}

// SignupTestUser creates a user through the session manager.
func SignupTestUser(t *testing.T, manager *session.Manager, name, email string) {
	t.Helper()

	err := manager.Signup(context.Background(), session.SignupInput{
		Name:            name,
		Course:          "BSIT",
		Year:            "3rd Year",
		Email:           email,
		Password:        TestPassword,
		ConfirmPassword: TestPassword,
	})
	if err != nil {
		t.Fatalf("Failed to sign up test user %s: %v", email, err)
	}
}

// LoginTestUser signs up (if needed) and logs in a user, returning the
// live session.
func LoginTestUser(t *testing.T, manager *session.Manager, name, email string) *session.Session {
	t.Helper()

	sess, err := manager.Login(context.Background(), email, TestPassword)
	if err != nil {
		SignupTestUser(t, manager, name, email)
		sess, err = manager.Login(context.Background(), email, TestPassword)
	}
	if err != nil {
		t.Fatalf("Failed to log in test user %s: %v", email, err)
	}
	return sess
}

// CreateTestPoll creates a poll owned by sess with one option per text.
func CreateTestPoll(t *testing.T, polls *repo.Polls, sess *session.Session, question string, optionTexts ...string) models.Poll {
	t.Helper()

	options := make([]models.OptionInput, 0, len(optionTexts))
	for _, text := range optionTexts {
		options = append(options, models.OptionInput{Text: text})
	}

	poll, err := polls.Save(context.Background(), sess, models.PollInput{
		Question: question,
		Options:  options,
	}, "")
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
