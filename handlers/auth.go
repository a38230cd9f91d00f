// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/middleware"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/models"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/session"
)

type AuthHandler struct {
	manager *session.Manager
	tokens  *session.Tokens
}

func NewAuthHandler(manager *session.Manager, tokens *session.Tokens) *AuthHandler {
	return &AuthHandler{manager: manager, tokens: tokens}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.manager.Signup(r.Context(), session.SignupInput{
		Name:            req.Name,
		Course:          req.Course,
		Year:            req.Year,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("user signed up", "email", session.NormalizeEmail(req.Email))

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "Signup successful! Please login.",
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sess, err := h.manager.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	token, err := h.tokens.Issue(sess)
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("user logged in", "user_id", sess.User.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  sess.User.Public(),
	})
}

// Logout handles POST /auth/logout
// Idempotent: succeeds with or without a valid token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := r.Header.Get("X-Session-Token"); token != "" {
		h.tokens.Revoke(token)
	}
	h.manager.Logout(r.Context())

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "You have been logged out successfully.",
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	middleware.JSONResponse(w, http.StatusOK, sess.User.Public())
}

// UpdateProfilePic handles PUT /auth/profile-pic
func (h *AuthHandler) UpdateProfilePic(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req models.UpdateProfilePicRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.manager.UpdateProfilePic(r.Context(), sess, req.ProfilePic); err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sess.User.Public())
}
