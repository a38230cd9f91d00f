// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/middleware"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/models"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/repo"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/session"
)

type PollHandler struct {
	repo *repo.Polls
}

func NewPollHandler(r *repo.Polls) *PollHandler {
	return &PollHandler{repo: r}
}

// List handles GET /polls
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	polls, err := h.repo.List(r.Context())
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	views := make([]models.PollView, 0, len(polls))
	for _, p := range polls {
		views = append(views, models.PollView{
			Poll:       p,
			CreatedAgo: humanize.Time(p.CreatedAt),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, views)
}

// Get handles GET /polls/{id}
func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	poll, err := h.repo.Get(r.Context(), id)
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollView{
		Poll:       poll,
		CreatedAgo: humanize.Time(poll.CreatedAt),
	})
}

// Create handles POST /polls
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req models.PollInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	saved, err := h.repo.Save(r.Context(), sess, req, "")
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("poll created", "id", saved.ID, "owner", saved.OwnerID, "options", len(saved.Options))
	middleware.JSONResponse(w, http.StatusCreated, saved)
}

// Update handles PUT /polls/{id}
func (h *PollHandler) Update(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.PollInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	saved, err := h.repo.Save(r.Context(), sess, req, id)
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, saved)
}

// Delete handles DELETE /polls/{id}
func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.repo.Delete(r.Context(), sess, id); err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("poll deleted", "id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Poll removed successfully.",
	})
}

// Vote handles POST /polls/{id}/vote
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	poll, err := h.repo.Vote(r.Context(), sess, id, req.OptionID)
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("vote recorded", "poll_id", id, "user_id", sess.User.ID, "option_id", req.OptionID)
	middleware.JSONResponse(w, http.StatusOK, poll)
}
