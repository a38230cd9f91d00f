// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Response Helpers

JSONResponse and ErrorResponse write JSON bodies with consistent shape.
ErrorFrom maps a failed domain operation to its status code via the
error's apperr kind; errors without a kind become a 500 and are logged
with their underlying cause.

# Session Resolution

RequireSession resolves the X-Session-Token header through the token
registry and passes the session to the wrapped handler:

	mux.HandleFunc("POST /polls", middleware.WithLogging(
		middleware.RequireSession(tokens, h.Create)))

# Other Middleware

WithLogging logs request start/completion with duration. CORS allows
cross-origin requests from the mobile webview and dev servers.
*/
package middleware
