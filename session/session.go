// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/apperr"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/models"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/store"
)

// keyLoggedInUser is the kv key the logged-in email is mirrored under on
// stores with a raw kv surface. Same key the previous app revision used.
const keyLoggedInUser = "loggedInUser"

// Session identifies who is currently using the app. Repositories receive
// it explicitly on every mutating call; nil means "not logged in".
type Session struct {
	User models.User
}

type SignupInput struct {
	Name            string
	Course          string
	Year            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Manager owns signup, login and logout against the user collection.
type Manager struct {
	store store.Store
}

func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

// NormalizeEmail is the case-insensitive form emails are stored and
// looked up under.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a new user. It does not establish a session; the caller
// must log in afterwards.
func (m *Manager) Signup(ctx context.Context, in SignupInput) error {
	if in.Name == "" || in.Course == "" || in.Year == "" || in.Email == "" ||
		in.Password == "" || in.ConfirmPassword == "" {
		return apperr.New(apperr.Validation, "Please fill all fields.")
	}
	if in.Password != in.ConfirmPassword {
		return apperr.New(apperr.Validation, "Passwords do not match.")
	}

	email := NormalizeEmail(in.Email)

	existing, err := m.store.Query(ctx, models.CollectionUsers, "email", email)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if len(existing) > 0 {
		return apperr.New(apperr.Conflict, "An account with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = m.store.Add(ctx, models.CollectionUsers, store.Document{
		"name":         in.Name,
		"course":       in.Course,
		"year":         in.Year,
		"email":        email,
		"passwordHash": string(hash),
		"createdAt":    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login checks credentials and establishes a Session. On stores with a kv
// surface the logged-in email is mirrored durably for Restore.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "Please enter email and password.")
	}

	normalized := NormalizeEmail(email)

	docs, err := m.store.Query(ctx, models.CollectionUsers, "email", normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(docs) == 0 {
		return nil, apperr.New(apperr.NotFound, "User does not exist. Please sign up first.")
	}

	var user models.User
	if err := store.Decode(docs[0], &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.New(apperr.Auth, "Incorrect password.")
	}

	if kv, ok := m.store.(store.KV); ok {
		// The in-memory session stays authoritative if the mirror fails.
		if err := kv.SetRaw(ctx, keyLoggedInUser, []byte(user.Email)); err != nil {
			slog.Warn("failed to mirror logged-in user", "error", err)
		}
	}

	return &Session{User: user}, nil
}

// Logout clears the durable session mirror. Idempotent; the caller drops
// its Session reference.
func (m *Manager) Logout(ctx context.Context) {
	if kv, ok := m.store.(store.KV); ok {
		if err := kv.DeleteRaw(ctx, keyLoggedInUser); err != nil {
			slog.Warn("failed to clear logged-in user", "error", err)
		}
	}
}

// Restore rebuilds a Session from the durable mirror after a process
// restart. Returns (nil, nil) when no mirror exists or the store has no kv
// surface.
func (m *Manager) Restore(ctx context.Context) (*Session, error) {
	kv, ok := m.store.(store.KV)
	if !ok {
		return nil, nil
	}

	raw, found, err := kv.GetRaw(ctx, keyLoggedInUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read session mirror: %w", err)
	}
	if !found {
		return nil, nil
	}

	docs, err := m.store.Query(ctx, models.CollectionUsers, "email", string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to look up mirrored user: %w", err)
	}
	if len(docs) == 0 {
		// Stale mirror; clear it.
		m.Logout(ctx)
		return nil, nil
	}

	var user models.User
	if err := store.Decode(docs[0], &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &Session{User: user}, nil
}

// UpdateProfilePic sets the current user's profile picture URI, both on
// the stored user document and on the live session.
func (m *Manager) UpdateProfilePic(ctx context.Context, sess *Session, uri string) error {
	if sess == nil {
		return apperr.New(apperr.Auth, "You must be logged in.")
	}
	if uri == "" {
		return apperr.New(apperr.Validation, "Please choose a picture.")
	}

	err := m.store.Update(ctx, models.CollectionUsers, sess.User.ID, store.Document{
		"profilePic": uri,
	})
	if errors.Is(err, store.ErrNotFound) {
		return apperr.New(apperr.NotFound, "User not found.")
	}
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}

	sess.User.ProfilePic = uri
	return nil
}
