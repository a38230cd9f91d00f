// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session owns who is currently using the app.

# Lifecycle

	mgr := session.NewManager(st)
	err := mgr.Signup(ctx, in)          // creates the user, no session
	sess, err := mgr.Login(ctx, email, password)
	mgr.Logout(ctx)                     // idempotent

Signup never auto-authenticates; login is an explicit second step. A
Session is an explicit value handed to every mutating repository call, so
ownership checks need no ambient global state.

Passwords are stored as bcrypt hashes and compared with bcrypt on login.
The failure surface is unchanged from the plaintext days: unknown email is
a not-found error, wrong password an auth error.

# Durable Mirror

On stores with a raw kv surface (the local adapter) the logged-in email is
mirrored under "loggedInUser" and Restore rebuilds the session after a
process restart. The remote variant has no mirror.

# HTTP Tokens

Tokens maps opaque random tokens to Sessions so the HTTP facade can carry
the session in an X-Session-Token header. Tokens are memory-only.
*/
package session
