// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers the mobile client
calls.

# Handler Types

Each handler is a struct wrapping one repository (or the session manager):

  - AuthHandler: signup, login, logout, current user, profile picture
  - AnnouncementHandler, EventHandler, FeedbackHandler: list and
    ownership-scoped create/edit/delete for the plain record kinds
  - PollHandler: poll CRUD plus voting

Handlers are created via constructor functions taking their repository:

	pollHandler := handlers.NewPollHandler(repo.NewPolls(st))

# Session Flow

Clients sign up, then log in to receive a session token:

	POST /auth/signup → 201
	POST /auth/login  → {token, user}

Mutating operations carry the token in the X-Session-Token header and are
wrapped in middleware.RequireSession; lists are public. Domain failures
map to status codes through the error's apperr kind (validation 400,
auth 401, permission 403, not found 404, conflict 409).

# Voting

	POST /polls/{id}/vote with {option_id}

Voting the same option twice retracts the vote; voting a different option
moves it. The response is the updated poll.
*/
package handlers
