// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
)

// Tokens maps opaque session tokens to live Sessions for the HTTP surface.
// Tokens live in process memory only, like the original app's in-memory
// session; a restart logs everyone out (Restore covers the local variant).
type Tokens struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewTokens() *Tokens {
	return &Tokens{sessions: make(map[string]*Session)}
}

// Issue registers a session and returns its token.
func (t *Tokens) Issue(sess *Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	t.sessions[token] = sess
	t.mu.Unlock()

	return token, nil
}

// Resolve returns the session for a token, or nil if unknown.
func (t *Tokens) Resolve(token string) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions[token]
}

// Revoke drops a token. Idempotent.
func (t *Tokens) Revoke(token string) {
	t.mu.Lock()
	delete(t.sessions, token)
	t.mu.Unlock()
}

// generateToken creates a random secure session token.
func generateToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
