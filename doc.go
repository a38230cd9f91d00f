// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Voice of CCTC API server.

Voice of CCTC is a campus community app offering announcements, events,
feedback, polls and user profiles. This server is the shared domain and
data-access layer behind the mobile client: authentication,
ownership-scoped CRUD, and poll voting with vote-migration semantics.

# Starting the Server

The server runs against one of two persistence backends:

	go run main.go -b local -d voice-of-cctc.db
	go run main.go -b firestore -project rebias-voice-of-cctc

# Configuration

Settings come from CLI flags, environment variables or a .env file:

  - PORT (-p): Server port (default: 8080)
  - STORE_BACKEND (-b): local or firestore (default: local)
  - DATABASE_PATH (-d): sqlite file for the local backend
  - FIRESTORE_PROJECT (-project): project id for the firestore backend
  - GOOGLE_APPLICATION_CREDENTIALS (-credentials): service account file

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, records, polls)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, session resolution
  - models: Domain entities and request/response types
  - session: Signup/login/logout and the session token registry
  - repo: Ownership-scoped repositories and the poll voting engine
  - store: Persistence adapter (local sqlite kv or Firestore)
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
