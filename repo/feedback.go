// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repo

import (
	"context"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/apperr"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/models"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/session"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/store"
)

// Feedbacks is the repository for student feedback entries.
type Feedbacks struct {
	base
}

func NewFeedbacks(s store.Store) *Feedbacks {
	return &Feedbacks{base{store: s, collection: models.CollectionFeedbacks, label: "feedback"}}
}

func (r *Feedbacks) List(ctx context.Context) ([]models.Feedback, error) {
	docs, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Feedback](docs)
}

func (r *Feedbacks) Save(ctx context.Context, sess *session.Session, in models.FeedbackInput, editingID string) (models.Feedback, error) {
	if in.Name == "" || in.Message == "" {
		return models.Feedback{}, apperr.New(apperr.Validation, "Please fill all fields.")
	}

	doc, err := r.save(ctx, sess, store.Document{
		"name":    in.Name,
		"message": in.Message,
	}, editingID)
	if err != nil {
		return models.Feedback{}, err
	}

	var out models.Feedback
	if err := store.Decode(doc, &out); err != nil {
		return models.Feedback{}, err
	}
	return out, nil
}

func (r *Feedbacks) Delete(ctx context.Context, sess *session.Session, id string) error {
	return r.remove(ctx, sess, id)
}

func (r *Feedbacks) Subscribe(ctx context.Context) (<-chan []models.Feedback, func(), error) {
	sub, err := r.store.Subscribe(ctx, r.collection)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := forward[models.Feedback](sub)
	return ch, cancel, nil
}
