// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Local is the on-device persistence adapter: a durable string-keyed kv
// store holding each collection as one JSON array, read and written whole.
// It preserves insertion order within a collection.
type Local struct {
	db *sql.DB

	// mu serializes the read-modify-write cycle every mutation performs,
	// so a single record update is atomic and no partial state is readable.
	mu sync.Mutex

	subMu sync.Mutex
	subs  map[string][]*localSub
}

type localSub struct {
	ch   chan Snapshot
	done chan struct{}
	once sync.Once
}

func (s *localSub) close() {
	s.once.Do(func() {
		close(s.ch)
		close(s.done)
	})
}

// Keys the previous app revision wrote its collections under. Kept so a
// device upgrading in place finds its data.
var localKeys = map[string]string{
	"feedbacks": "feedback_list",
}

func localKey(collection string) string {
	if k, ok := localKeys[collection]; ok {
		return k
	}
	return collection
}

// OpenLocal opens (creating if needed) the kv store at path.
func OpenLocal(path string) (*Local, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
		    key TEXT PRIMARY KEY,
		    value TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Local{db: db, subs: make(map[string][]*localSub)}, nil
}

func (l *Local) Close() error {
	l.subMu.Lock()
	for _, subs := range l.subs {
		for _, sub := range subs {
			sub.close()
		}
	}
	l.subs = make(map[string][]*localSub)
	l.subMu.Unlock()

	return l.db.Close()
}

func (l *Local) readCollection(ctx context.Context, collection string) ([]Document, error) {
	var raw string
	err := l.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, localKey(collection)).Scan(&raw)
	if err == sql.ErrNoRows {
		// Never-written key reads as the empty collection.
		return []Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}

	var docs []Document
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, fmt.Errorf("corrupt collection %s: %w", collection, err)
	}
	return docs, nil
}

func (l *Local) writeCollection(ctx context.Context, collection string, docs []Document) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, localKey(collection), string(raw))
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}

	l.notify(collection, docs)
	return nil
}

func (l *Local) Add(ctx context.Context, collection string, doc Document) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	docs, err := l.readCollection(ctx, collection)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	stored := make(Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored["id"] = id

	docs = append(docs, stored)
	if err := l.writeCollection(ctx, collection, docs); err != nil {
		return "", err
	}
	return id, nil
}

func (l *Local) Get(ctx context.Context, collection, id string) (Document, error) {
	docs, err := l.readCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if docID(d) == id {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func (l *Local) List(ctx context.Context, collection string) ([]Document, error) {
	return l.readCollection(ctx, collection)
}

func (l *Local) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	docs, err := l.readCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	matched := []Document{}
	for _, d := range docs {
		if reflect.DeepEqual(d[field], value) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

func (l *Local) Update(ctx context.Context, collection, id string, fields Document) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	docs, err := l.readCollection(ctx, collection)
	if err != nil {
		return err
	}

	for i, d := range docs {
		if docID(d) != id {
			continue
		}
		for k, v := range fields {
			if k == "id" {
				continue
			}
			d[k] = v
		}
		docs[i] = d
		return l.writeCollection(ctx, collection, docs)
	}
	return ErrNotFound
}

func (l *Local) Delete(ctx context.Context, collection, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	docs, err := l.readCollection(ctx, collection)
	if err != nil {
		return err
	}

	kept := docs[:0]
	found := false
	for _, d := range docs {
		if docID(d) == id {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return ErrNotFound
	}
	return l.writeCollection(ctx, collection, kept)
}

func (l *Local) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	current, err := l.readCollection(ctx, collection)
	if err != nil {
		return nil, err
	}

	sub := &localSub{ch: make(chan Snapshot, 1), done: make(chan struct{})}
	sub.ch <- Snapshot(current)

	l.subMu.Lock()
	l.subs[collection] = append(l.subs[collection], sub)
	l.subMu.Unlock()

	cancel := func() {
		l.subMu.Lock()
		defer l.subMu.Unlock()
		subs := l.subs[collection]
		for i, s := range subs {
			if s == sub {
				l.subs[collection] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		sub.close()
	}

	// The watcher exits on whichever comes first, so an early Cancel does
	// not pin a goroutine to a long-lived context.
	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-sub.done:
			}
		}()
	}

	return &Subscription{C: sub.ch, cancel: cancel}, nil
}

// notify pushes the new collection state to subscribers, replacing any
// undelivered snapshot so consumers always see the latest state.
func (l *Local) notify(collection string, docs []Document) {
	l.subMu.Lock()
	defer l.subMu.Unlock()

	for _, sub := range l.subs[collection] {
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- Snapshot(docs):
		default:
		}
	}
}

// Raw key-value surface, used for the loggedInUser session mirror.

func (l *Local) GetRaw(ctx context.Context, key string) ([]byte, bool, error) {
	var raw string
	err := l.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return []byte(raw), true, nil
}

func (l *Local) SetRaw(ctx context.Context, key string, value []byte) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (l *Local) DeleteRaw(ctx context.Context, key string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func docID(d Document) string {
	id, _ := d["id"].(string)
	return id
}
