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

// Events is the repository for campus events.
type Events struct {
	base
}

func NewEvents(s store.Store) *Events {
	return &Events{base{store: s, collection: models.CollectionEvents, label: "event"}}
}

func (r *Events) List(ctx context.Context) ([]models.Event, error) {
	docs, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Event](docs)
}

func (r *Events) Save(ctx context.Context, sess *session.Session, in models.EventInput, editingID string) (models.Event, error) {
	if in.Title == "" || in.Date == "" || in.Description == "" {
		return models.Event{}, apperr.New(apperr.Validation, "Please fill all fields.")
	}

	doc, err := r.save(ctx, sess, store.Document{
		"title":       in.Title,
		"date":        in.Date,
		"description": in.Description,
	}, editingID)
	if err != nil {
		return models.Event{}, err
	}

	var out models.Event
	if err := store.Decode(doc, &out); err != nil {
		return models.Event{}, err
	}
	return out, nil
}

func (r *Events) Delete(ctx context.Context, sess *session.Session, id string) error {
	return r.remove(ctx, sess, id)
}

func (r *Events) Subscribe(ctx context.Context) (<-chan []models.Event, func(), error) {
	sub, err := r.store.Subscribe(ctx, r.collection)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := forward[models.Event](sub)
	return ch, cancel, nil
}
