// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jaymica07/Rebias-Voice-of-CCTC/apperr"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/session"
	"github.com/Jaymica07/Rebias-Voice-of-CCTC/store"
)

// base holds the document-level plumbing shared by every repository:
// session gating, ownership checks and the create/merge/delete cycle
// against the persistence adapter.
type base struct {
	store      store.Store
	collection string
	label      string // singular record name for user-facing messages
}

func (b *base) list(ctx context.Context) ([]store.Document, error) {
	docs, err := b.store.List(ctx, b.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", b.label, err)
	}
	return docs, nil
}

// save creates a new record or merges fields into an existing one. The
// caller can never overwrite id or ownerId; on create both are assigned
// here. Returns the stored document.
func (b *base) save(ctx context.Context, sess *session.Session, fields store.Document, editingID string) (store.Document, error) {
	if sess == nil {
		return nil, apperr.New(apperr.Auth, "You must be logged in to save a "+b.label+".")
	}

	if editingID == "" {
		doc := make(store.Document, len(fields)+2)
		for k, v := range fields {
			doc[k] = v
		}
		doc["ownerId"] = sess.User.ID
		doc["createdAt"] = time.Now()

		id, err := b.store.Add(ctx, b.collection, doc)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", b.label, err)
		}
		doc["id"] = id
		return doc, nil
	}

	existing, err := b.store.Get(ctx, b.collection, editingID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, capitalized(b.label)+" not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", b.label, err)
	}

	if owner, _ := existing["ownerId"].(string); owner != sess.User.ID {
		return nil, apperr.New(apperr.Permission, "You can only edit your own "+b.label+"s.")
	}

	merge := make(store.Document, len(fields))
	for k, v := range fields {
		if k == "id" || k == "ownerId" {
			continue
		}
		merge[k] = v
	}

	if err := b.store.Update(ctx, b.collection, editingID, merge); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, capitalized(b.label)+" not found.")
		}
		return nil, fmt.Errorf("failed to update %s: %w", b.label, err)
	}

	for k, v := range merge {
		existing[k] = v
	}
	return existing, nil
}

// remove deletes a record permanently after the ownership check.
func (b *base) remove(ctx context.Context, sess *session.Session, id string) error {
	if sess == nil {
		return apperr.New(apperr.Auth, "You must be logged in.")
	}

	existing, err := b.store.Get(ctx, b.collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.New(apperr.NotFound, capitalized(b.label)+" not found.")
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", b.label, err)
	}

	if owner, _ := existing["ownerId"].(string); owner != sess.User.ID {
		return apperr.New(apperr.Permission, "You can only delete your own "+b.label+"s.")
	}

	if err := b.store.Delete(ctx, b.collection, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, capitalized(b.label)+" not found.")
		}
		return fmt.Errorf("failed to delete %s: %w", b.label, err)
	}
	return nil
}

// decodeAll converts raw documents into typed records.
func decodeAll[T any](docs []store.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := store.Decode(d, &v); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// forward adapts a raw subscription into a typed one. The returned cancel
// releases the underlying subscription.
func forward[T any](sub *store.Subscription) (<-chan []T, func()) {
	ch := make(chan []T, 1)
	go func() {
		defer close(ch)
		for snap := range sub.C {
			typed, err := decodeAll[T](snap)
			if err != nil {
				continue
			}
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- typed:
			default:
			}
		}
	}()
	return ch, sub.Cancel
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
