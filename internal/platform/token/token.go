// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package token inspects persisted bearer credentials on the client side.

The FFL backend issues JWTs. The client never verifies signatures, the
server being the sole authority on token validity, but it does decode the
claims segment locally so that obviously-expired credentials are discarded
without a wasted round trip.

Invariant: anything that does not decode to a well-formed JWT with an expiry
claim is treated as expired. Failing closed here is safe because the worst
case is an unnecessary re-login.
*/
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpirySkew is subtracted from the expiry check so requests already in
// flight do not straddle the boundary.
const ExpirySkew = 30 * time.Second

// claims is the subset of the FFL JWT payload the client cares about.
type claims struct {
	jwt.RegisteredClaims
}

// Info holds the locally-decoded view of a bearer credential.
type Info struct {
	// Raw is the encoded credential as stored.
	Raw string
	// Subject is the account identifier embedded in the token, when present.
	Subject string
	// ExpiresAt is the embedded expiry instant; zero when absent.
	ExpiresAt time.Time

	wellFormed bool
}

// Inspect decodes the claims segment of raw without verifying the signature.
//
// A malformed token (not three segments, undecodable payload) or one missing
// the exp claim yields an Info that reports expired for every instant.
func Inspect(raw string) Info {
	info := Info{Raw: raw}
	if raw == "" {
		return info
	}

	parsed := &claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, parsed); err != nil {
		return info
	}
	if parsed.ExpiresAt == nil {
		return info
	}

	info.wellFormed = true
	info.Subject = parsed.Subject
	info.ExpiresAt = parsed.ExpiresAt.Time
	return info
}

// ExpiredAt reports whether the credential is expired at the given instant,
// applying the [ExpirySkew] safety margin. Malformed credentials are always
// expired.
func (i Info) ExpiredAt(now time.Time) bool {
	if !i.wellFormed {
		return true
	}
	return i.ExpiresAt.Sub(now) <= ExpirySkew
}

// Expired reports whether the credential is expired right now.
func (i Info) Expired() bool {
	return i.ExpiredAt(time.Now())
}

// IsExpired is the one-call form: decode raw and check it against the clock.
func IsExpired(raw string) bool {
	return Inspect(raw).Expired()
}
