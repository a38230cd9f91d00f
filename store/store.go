// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when an id does not resolve to a document.
var ErrNotFound = errors.New("document not found")

// Document is the backend-neutral form of one stored record. On reads the
// document id travels inside the map under "id".
type Document map[string]any

// Snapshot is the full state of one collection at a point in time.
type Snapshot []Document

// Store is the persistence adapter both backends implement.
type Store interface {
	// Add stores a new document and returns its generated id.
	Add(ctx context.Context, collection string, doc Document) (string, error)

	// Get fetches one document by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (Document, error)

	// List fetches all documents of a collection in store-defined order.
	List(ctx context.Context, collection string) ([]Document, error)

	// Query fetches the documents whose field equals value.
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)

	// Update merges fields into an existing document. Returns ErrNotFound
	// if the id does not resolve. The merge commits as a single write.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Delete removes a document permanently. Returns ErrNotFound if absent.
	Delete(ctx context.Context, collection, id string) error

	// Subscribe delivers the full collection state whenever any member
	// changes, starting with the current state.
	Subscribe(ctx context.Context, collection string) (*Subscription, error)

	Close() error
}

// KV is the raw key-value surface of stores that have one. The local
// adapter uses it to mirror the logged-in email durably.
type KV interface {
	GetRaw(ctx context.Context, key string) (value []byte, ok bool, err error)
	SetRaw(ctx context.Context, key string, value []byte) error
	DeleteRaw(ctx context.Context, key string) error
}

// Subscription delivers collection snapshots on C until canceled. Delivery
// is latest-wins: a slow consumer sees the newest snapshot, not every
// intermediate one.
type Subscription struct {
	C      <-chan Snapshot
	cancel func()
}

// Cancel stops delivery and releases the subscription. Idempotent.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Decode converts a document into a typed value via its JSON form.
func Decode(doc Document, v any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Encode converts a typed value into a document via its JSON form.
func Encode(v any) (Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
