// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/handlers"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/middleware"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/repo"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/session"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/store"
)

func NewRouter(st store.Store, manager *session.Manager, tokens *session.Tokens) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(manager, tokens)
	announcementHandler := handlers.NewAnnouncementHandler(repo.NewAnnouncements(st))
	eventHandler := handlers.NewEventHandler(repo.NewEvents(st))
	feedbackHandler := handlers.NewFeedbackHandler(repo.NewFeedbacks(st))
	pollHandler := handlers.NewPollHandler(repo.NewPolls(st))

	logged := middleware.WithLogging
	authed := func(next middleware.SessionFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(tokens, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("POST /auth/signup", logged(authHandler.Signup))
	mux.HandleFunc("POST /auth/login", logged(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", logged(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", authed(authHandler.Me))
	mux.HandleFunc("PUT /auth/profile-pic", authed(authHandler.UpdateProfilePic))

	// Announcements
	mux.HandleFunc("GET /announcements", logged(announcementHandler.List))
	mux.HandleFunc("POST /announcements", authed(announcementHandler.Create))
	mux.HandleFunc("PUT /announcements/{id}", authed(announcementHandler.Update))
	mux.HandleFunc("DELETE /announcements/{id}", authed(announcementHandler.Delete))

	// Events
	mux.HandleFunc("GET /events", logged(eventHandler.List))
	mux.HandleFunc("POST /events", authed(eventHandler.Create))
	mux.HandleFunc("PUT /events/{id}", authed(eventHandler.Update))
	mux.HandleFunc("DELETE /events/{id}", authed(eventHandler.Delete))

	// Feedback
	mux.HandleFunc("GET /feedbacks", logged(feedbackHandler.List))
	mux.HandleFunc("POST /feedbacks", authed(feedbackHandler.Create))
	mux.HandleFunc("PUT /feedbacks/{id}", authed(feedbackHandler.Update))
	mux.HandleFunc("DELETE /feedbacks/{id}", authed(feedbackHandler.Delete))

	// Polls and voting
	mux.HandleFunc("GET /polls", logged(pollHandler.List))
	mux.HandleFunc("GET /polls/{id}", logged(pollHandler.Get))
	mux.HandleFunc("POST /polls", authed(pollHandler.Create))
	mux.HandleFunc("PUT /polls/{id}", authed(pollHandler.Update))
	mux.HandleFunc("DELETE /polls/{id}", authed(pollHandler.Delete))
	mux.HandleFunc("POST /polls/{id}/vote", authed(pollHandler.Vote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Voice of CCTC API v1"))
	})

	return mux
}
