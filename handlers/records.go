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

// Handlers for the three plain record kinds. Lists are public; create,
// edit and delete go through RequireSession.

type AnnouncementHandler struct {
	repo *repo.Announcements
}

func NewAnnouncementHandler(r *repo.Announcements) *AnnouncementHandler {
	return &AnnouncementHandler{repo: r}
}

// List handles GET /announcements
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	views := make([]models.AnnouncementView, 0, len(items))
	for _, a := range items {
		views = append(views, models.AnnouncementView{
			Announcement: a,
			CreatedAgo:   humanize.Time(a.CreatedAt),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, views)
}

// Create handles POST /announcements
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req models.AnnouncementInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	saved, err := h.repo.Save(r.Context(), sess, req, "")
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("announcement created", "id", saved.ID, "owner", saved.OwnerID)
	middleware.JSONResponse(w, http.StatusCreated, saved)
}

// Update handles PUT /announcements/{id}
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.AnnouncementInput
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

// Delete handles DELETE /announcements/{id}
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.repo.Delete(r.Context(), sess, id); err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("announcement deleted", "id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Announcement removed successfully.",
	})
}

type EventHandler struct {
	repo *repo.Events
}

func NewEventHandler(r *repo.Events) *EventHandler {
	return &EventHandler{repo: r}
}

// List handles GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	views := make([]models.EventView, 0, len(items))
	for _, e := range items {
		views = append(views, models.EventView{
			Event:      e,
			CreatedAgo: humanize.Time(e.CreatedAt),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, views)
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req models.EventInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	saved, err := h.repo.Save(r.Context(), sess, req, "")
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("event created", "id", saved.ID, "owner", saved.OwnerID)
	middleware.JSONResponse(w, http.StatusCreated, saved)
}

// Update handles PUT /events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.EventInput
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

// Delete handles DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.repo.Delete(r.Context(), sess, id); err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("event deleted", "id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Event removed successfully.",
	})
}

type FeedbackHandler struct {
	repo *repo.Feedbacks
}

func NewFeedbackHandler(r *repo.Feedbacks) *FeedbackHandler {
	return &FeedbackHandler{repo: r}
}

// List handles GET /feedbacks
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	views := make([]models.FeedbackView, 0, len(items))
	for _, f := range items {
		views = append(views, models.FeedbackView{
			Feedback:   f,
			CreatedAgo: humanize.Time(f.CreatedAt),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, views)
}

// Create handles POST /feedbacks
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req models.FeedbackInput
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	saved, err := h.repo.Save(r.Context(), sess, req, "")
	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("feedback submitted", "id", saved.ID, "owner", saved.OwnerID)
	middleware.JSONResponse(w, http.StatusCreated, saved)
}

// Update handles PUT /feedbacks/{id}
func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.FeedbackInput
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

// Delete handles DELETE /feedbacks/{id}
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.repo.Delete(r.Context(), sess, id); err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

	slog.Info("feedback deleted", "id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Feedback removed successfully.",
	})
}
