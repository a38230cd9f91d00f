// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ method routing.

Public routes (lists, login, signup) get request logging; mutating routes
additionally resolve the X-Session-Token header through RequireSession
before the handler runs.
*/
package router
