// Copyright (c) 2025 Voice of CCTC contributors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags, environment
variables and an optional .env file.

Flags win over environment variables. The backend defaults to local with
a sqlite file in the working directory; the firestore backend requires a
project id and usually a service account credentials file:

	voice-of-cctc -b local -d /data/voice.db
	voice-of-cctc -b firestore -project rebias-voice-of-cctc
*/
package cliparse
