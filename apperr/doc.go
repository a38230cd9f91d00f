// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the error kinds every domain operation can fail with.

An *Error carries a Kind (Validation, Auth, Conflict, NotFound, Permission),
a user-visible Message, and optionally the underlying cause. Repositories
and the session manager return these; the HTTP layer maps them to status
codes via Kind.Status and anything without a Kind becomes a 500.

	if err != nil {
		middleware.ErrorFrom(w, err)
		return
	}

Failed operations never partially mutate state, so an *Error always means
the stores are untouched.
*/
package apperr
