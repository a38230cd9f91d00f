package store

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func openTestLocal(t *testing.T) *Local {
	t.Helper()
	st, err := OpenLocal(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open local store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLocalEmptyCollection(t *testing.T) {
	st := openTestLocal(t)
	ctx := context.Background()

	docs, err := st.List(ctx, "announcements")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Expected empty collection, got %d docs", len(docs))
	}

	if _, err := st.Get(ctx, "announcements", "missing"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLocalAddGetList(t *testing.T) {
	st := openTestLocal(t)
	ctx := context.Background()

	id1, err := st.Add(ctx, "events", Document{"title": "Foundation Day"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	id2, err := st.Add(ctx, "events", Document{"title": "Acquaintance Party"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id1 == "" || id1 == id2 {
		t.Errorf("Expected distinct non-empty ids, got %q and %q", id1, id2)
	}

	doc, err := st.Get(ctx, "events", id1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc["title"] != "Foundation Day" {
		t.Errorf("Expected title 'Foundation Day', got %v", doc["title"])
	}
	if doc["id"] != id1 {
		t.Errorf("Expected id inside document, got %v", doc["id"])
	}

	// Insertion order is preserved
	docs, err := st.List(ctx, "events")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 2 || docs[0]["id"] != id1 || docs[1]["id"] != id2 {
		t.Errorf("Expected insertion order [%s %s], got %v", id1, id2, docs)
	}
}

func TestLocalQuery(t *testing.T) {
	st := openTestLocal(t)
	ctx := context.Background()

	st.Add(ctx, "users", Document{"email": "ana@cctc.edu.ph", "name": "Ana"})
	st.Add(ctx, "users", Document{"email": "ben@cctc.edu.ph", "name": "Ben"})

	docs, err := st.Query(ctx, "users", "email", "ana@cctc.edu.ph")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(docs) != 1 || docs[0]["name"] != "Ana" {
		t.Errorf("Expected exactly Ana, got %v", docs)
	}

	docs, err = st.Query(ctx, "users", "email", "nobody@cctc.edu.ph")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Expected no matches, got %v", docs)
	}
}

func TestLocalUpdateMergesFields(t *testing.T) {
	st := openTestLocal(t)
	ctx := context.Background()

	id, _ := st.Add(ctx, "announcements", Document{
		"title":   "Enrollment",
		"date":    "2025-06-01",
		"ownerId": "u1",
	})

	err := st.Update(ctx, "announcements", id, Document{"title": "Enrollment Extended"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	doc, _ := st.Get(ctx, "announcements", id)
	if doc["title"] != "Enrollment Extended" {
		t.Errorf("Expected merged title, got %v", doc["title"])
	}
	if doc["date"] != "2025-06-01" || doc["ownerId"] != "u1" {
		t.Errorf("Expected untouched fields to survive the merge, got %v", doc)
	}

	// id is not overwritable through Update
	if err := st.Update(ctx, "announcements", id, Document{"id": "hijack"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if doc, _ := st.Get(ctx, "announcements", id); doc == nil {
		t.Error("Expected record to keep its id after merge attempt")
	}

	if err := st.Update(ctx, "announcements", "missing", Document{"title": "x"}); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLocalDelete(t *testing.T) {
	st := openTestLocal(t)
	ctx := context.Background()

	id, _ := st.Add(ctx, "feedbacks", Document{"message": "More benches please"})

	if err := st.Delete(ctx, "feedbacks", id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := st.Get(ctx, "feedbacks", id); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := st.Delete(ctx, "feedbacks", id); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestLocalSubscribe(t *testing.T) {
	st := openTestLocal(t)
	ctx := context.Background()

	id, _ := st.Add(ctx, "polls", Document{"question": "Best day?"})

	sub, err := st.Subscribe(ctx, "polls")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	// Current state arrives first
	select {
	case snap := <-sub.C:
		if len(snap) != 1 || snap[0]["id"] != id {
			t.Errorf("Expected initial snapshot with one poll, got %v", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for initial snapshot")
	}

	// Mutations push the full collection
	st.Add(ctx, "polls", Document{"question": "Best canteen meal?"})
	select {
	case snap := <-sub.C:
		if len(snap) != 2 {
			t.Errorf("Expected snapshot with two polls, got %d", len(snap))
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for change snapshot")
	}

	// Cancel closes the channel
	sub.Cancel()
	if _, ok := <-sub.C; ok {
		t.Error("Expected channel closed after Cancel")
	}
}

func TestLocalSubscribeCancelReleasesWatcher(t *testing.T) {
	st := openTestLocal(t)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Warm up the connection pool so the baseline is stable
	warmup, err := st.Subscribe(ctx, "polls")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	warmup.Cancel()
	time.Sleep(20 * time.Millisecond)

	before := runtime.NumGoroutine()

	subs := make([]*Subscription, 0, 20)
	for i := 0; i < 20; i++ {
		sub, err := st.Subscribe(ctx, "polls")
		if err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}
		subs = append(subs, sub)
	}
	for _, sub := range subs {
		sub.Cancel()
	}

	// Watchers must exit on Cancel even though ctx is still live
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := runtime.NumGoroutine(); n > before {
		t.Errorf("Expected watcher goroutines released after Cancel, %d still running over baseline %d", n-before, before)
	}
}

func TestLocalRawKV(t *testing.T) {
	st := openTestLocal(t)
	ctx := context.Background()

	if _, found, err := st.GetRaw(ctx, "loggedInUser"); err != nil || found {
		t.Fatalf("Expected absent key, got found=%v err=%v", found, err)
	}

	if err := st.SetRaw(ctx, "loggedInUser", []byte("ana@cctc.edu.ph")); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}

	val, found, err := st.GetRaw(ctx, "loggedInUser")
	if err != nil || !found || string(val) != "ana@cctc.edu.ph" {
		t.Errorf("Expected stored value, got %q found=%v err=%v", val, found, err)
	}

	if err := st.DeleteRaw(ctx, "loggedInUser"); err != nil {
		t.Fatalf("DeleteRaw failed: %v", err)
	}
	if _, found, _ := st.GetRaw(ctx, "loggedInUser"); found {
		t.Error("Expected key gone after DeleteRaw")
	}
}

func TestLocalDurability(t *testing.T) {
	path := filepath.Join(t.TempDir(), "durable.db")
	ctx := context.Background()

	st, err := OpenLocal(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	id, _ := st.Add(ctx, "announcements", Document{"title": "Midterms"})
	st.Close()

	st, err = OpenLocal(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer st.Close()

	doc, err := st.Get(ctx, "announcements", id)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if doc["title"] != "Midterms" {
		t.Errorf("Expected record to survive reopen, got %v", doc)
	}
}

func TestLocalFeedbackLegacyKey(t *testing.T) {
	st := openTestLocal(t)
	ctx := context.Background()

	st.Add(ctx, "feedbacks", Document{"message": "hi"})

	// The collection is stored under the key the old app revision used.
	raw, found, err := st.GetRaw(ctx, "feedback_list")
	if err != nil || !found {
		t.Fatalf("Expected feedback_list key, found=%v err=%v", found, err)
	}
	if len(raw) == 0 {
		t.Error("Expected serialized collection under feedback_list")
	}
}
