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

// Announcements is the repository for campus announcements.
type Announcements struct {
	base
}

func NewAnnouncements(s store.Store) *Announcements {
	return &Announcements{base{store: s, collection: models.CollectionAnnouncements, label: "announcement"}}
}

func (r *Announcements) List(ctx context.Context) ([]models.Announcement, error) {
	docs, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Announcement](docs)
}

// Save creates a new announcement, or edits the one identified by
// editingID when it is non-empty.
func (r *Announcements) Save(ctx context.Context, sess *session.Session, in models.AnnouncementInput, editingID string) (models.Announcement, error) {
	if in.Title == "" || in.Date == "" || in.Description == "" {
		return models.Announcement{}, apperr.New(apperr.Validation, "Please fill all fields.")
	}

	doc, err := r.save(ctx, sess, store.Document{
		"title":       in.Title,
		"date":        in.Date,
		"description": in.Description,
	}, editingID)
	if err != nil {
		return models.Announcement{}, err
	}

	var out models.Announcement
	if err := store.Decode(doc, &out); err != nil {
		return models.Announcement{}, err
	}
	return out, nil
}

func (r *Announcements) Delete(ctx context.Context, sess *session.Session, id string) error {
	return r.remove(ctx, sess, id)
}

// Subscribe delivers the full announcement list whenever it changes.
func (r *Announcements) Subscribe(ctx context.Context) (<-chan []models.Announcement, func(), error) {
	sub, err := r.store.Subscribe(ctx, r.collection)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := forward[models.Announcement](sub)
	return ch, cancel, nil
}
