// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence adapter behind the domain repositories.

# Adapter Contract

Store abstracts "add a record", "fetch all of a kind", "fetch one by id",
"merge fields by id", "delete by id" and "subscribe to collection changes"
over backend-neutral Documents (map[string]any, with the id under "id" on
reads). Two interchangeable implementations exist, selected at startup:

  - Local: a durable sqlite-backed kv store holding each collection as one
    JSON array under a string key, read and written whole. This is the
    on-device backend; it preserves insertion order and keeps the keys the
    previous app revision used (announcements, events, polls,
    feedback_list) so existing data survives an upgrade.
  - Firestore: hosted document collections with live snapshot listeners,
    matching the collections the mobile app already writes (users, polls,
    feedbacks, events, announcements).

# Ordering

Callers get "stable within one read" and nothing more. The local adapter
happens to preserve insertion order; the remote adapter returns snapshot
order.

# Subscriptions

Subscribe returns a cancelable handle whose channel carries full-collection
snapshots, starting with the current state. Delivery is latest-wins: slow
consumers skip intermediate states but always converge on the newest one.

# Concurrency

The local adapter serializes its read-modify-write cycle, so single-record
mutations are atomic on one device. Cross-client writes against the remote
adapter are last-writer-wins; nothing here serializes them.
*/
package store
