// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyfightleague/fflcli/internal/platform/token"
)

// signedToken builds a syntactically valid JWT. The signature key is
// irrelevant: the client never verifies it.
func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

/*
TestInspect_MalformedTokensAreExpired covers the fail-closed invariant:
anything that is not a decodable three-segment JWT with an exp claim reports
expired at every instant.
*/
func TestInspect_MalformedTokensAreExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two_segments", "abc.def"},
		{"bad_payload", "abc.!!!.ghi"},
		{
			"missing_exp_claim",
			signedToken(t, jwt.RegisteredClaims{Subject: "42"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := token.Inspect(tt.raw)
			assert.True(t, info.ExpiredAt(now))
			assert.True(t, info.ExpiredAt(now.Add(-time.Hour)))
		})
	}
}

/*
TestInfo_ExpiredAt_SkewBoundary checks the 30-second in-flight safety margin:
more than 30s of remaining life is valid, exactly 30s or less is expired.
*/
func TestInfo_ExpiredAt_SkewBoundary(t *testing.T) {
	now := time.Now().Truncate(time.Second)

	tests := []struct {
		name      string
		remaining time.Duration
		expired   bool
	}{
		{"well_in_future", time.Hour, false},
		{"just_over_margin", 31 * time.Second, false},
		{"exactly_margin", 30 * time.Second, true},
		{"under_margin", 29 * time.Second, true},
		{"already_past", -time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := signedToken(t, jwt.RegisteredClaims{
				Subject:   "42",
				ExpiresAt: jwt.NewNumericDate(now.Add(tt.remaining)),
			})

			info := token.Inspect(raw)
			assert.Equal(t, tt.expired, info.ExpiredAt(now))
		})
	}
}

/*
TestInspect_SurfacesClaims checks that the subject and expiry survive the
unverified decode.
*/
func TestInspect_SurfacesClaims(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwt.RegisteredClaims{
		Subject:   "fighter-fan",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})

	info := token.Inspect(raw)
	assert.Equal(t, "fighter-fan", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(expiry))
	assert.False(t, info.Expired())
}
