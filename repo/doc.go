// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package repo contains the ownership-scoped domain repositories.

# Contract

Announcements, Events, Feedbacks and Polls share one contract over the
persistence adapter:

	List(ctx)                      // all records, store-defined order
	Save(ctx, sess, input, editingID)
	Delete(ctx, sess, id)
	Subscribe(ctx)                 // typed full-list snapshots

Save with an empty editingID creates a record owned by the session's user;
with an editingID it merges the supplied fields into the existing record.
Callers can never overwrite id or ownerId. Every mutation is gated:

  - no session            → apperr.Auth
  - record absent         → apperr.NotFound
  - session user ≠ owner  → apperr.Permission

and a rejected operation leaves the store untouched.

# Voting Engine

Polls.Vote applies one user's vote with toggle and migration semantics:
first vote adds, a repeat on the same option retracts, a different option
moves the vote. Tallies and the voter set commit as a single write; after
every operation each user appears at most once in the voter set and the
tally sum equals the voter count.
*/
package repo
