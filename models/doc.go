// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain entities of the Voice of CCTC app and the
request/response types of its HTTP API.

# Domain Types

User, Announcement, Event, Feedback and Poll are the stored entities. Their
JSON tags mirror the document fields the mobile app writes (ownerId,
createdAt, option text/image/votes), so both persistence backends read data
written by earlier app revisions unchanged.

Every user-owned record carries:

  - id: assigned by the store on creation
  - ownerId: the creating user's id, immutable after creation
  - createdAt: set at creation

# Poll Consistency

A Poll holds an ordered Options slice with per-option tallies and a Voters
slice with at most one Vote per user. Poll.TotalVotes() equals len(Voters)
whenever the poll is consistent; the voting engine in package repo preserves
that equality across every operation.

# Views

The *View types wrap domain types with a humanized created_ago field for
list responses.
*/
package models
