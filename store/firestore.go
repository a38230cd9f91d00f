// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore is the remote persistence adapter: one hosted document
// collection per record kind, with push-based snapshot propagation.
type Firestore struct {
	client *firestore.Client
}

// OpenFirestore connects to the project's Firestore database. credentialsFile
// may be empty, in which case application default credentials are used.
func OpenFirestore(ctx context.Context, projectID, credentialsFile string) (*Firestore, error) {
	conf := &firebase.Config{ProjectID: projectID}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to firestore: %w", err)
	}

	return &Firestore{client: client}, nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	ref, _, err := f.client.Collection(collection).Add(ctx, map[string]any(doc))
	if err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (f *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return fromSnapshot(snap), nil
}

func (f *Firestore) List(ctx context.Context, collection string) ([]Document, error) {
	return f.collect(collection, f.client.Collection(collection).Documents(ctx))
}

func (f *Firestore) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	it := f.client.Collection(collection).Where(field, "==", value).Documents(ctx)
	return f.collect(collection, it)
}

func (f *Firestore) collect(collection string, it *firestore.DocumentIterator) ([]Document, error) {
	defer it.Stop()

	docs := []Document{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
		}
		docs = append(docs, fromSnapshot(snap))
	}
}

func (f *Firestore) Update(ctx context.Context, collection, id string, fields Document) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}

	_, err := f.client.Collection(collection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	// Firestore deletes are no-ops on missing documents; the adapter
	// contract requires ErrNotFound instead.
	if _, err := f.Get(ctx, collection, id); err != nil {
		return err
	}

	_, err := f.client.Collection(collection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	ctx, cancelCtx := context.WithCancel(ctx)
	it := f.client.Collection(collection).Snapshots(ctx)

	ch := make(chan Snapshot, 1)
	go func() {
		defer close(ch)
		defer it.Stop()
		for {
			qs, err := it.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					slog.Error("firestore snapshot listener stopped", "collection", collection, "error", err)
				}
				return
			}

			docs, err := f.collect(collection, qs.Documents)
			if err != nil {
				slog.Error("failed to read snapshot", "collection", collection, "error", err)
				continue
			}

			// Latest-wins delivery, matching the local adapter.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- Snapshot(docs):
			default:
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(cancelCtx)
	}

	return &Subscription{C: ch, cancel: cancel}, nil
}

func fromSnapshot(snap *firestore.DocumentSnapshot) Document {
	doc := Document(snap.Data())
	if doc == nil {
		doc = Document{}
	}
	doc["id"] = snap.Ref.ID
	return doc
}
