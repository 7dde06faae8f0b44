// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/internal/platform/credential"
	"github.com/fantasyfightleague/fflcli/internal/platform/httpclient"
)

// freshToken mints a token whose expiry is comfortably beyond the 30s skew.
func freshToken(t *testing.T) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

// staleToken mints a token already past its expiry.
func staleToken(t *testing.T) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

type harness struct {
	client   *httpclient.Client
	store    *credential.MemoryStore
	hookPath atomic.Value
	hits     atomic.Int64
}

// newHarness spins up a chi-routed fake backend and a client wired to an
// in-memory credential store.
func newHarness(t *testing.T, routes func(r chi.Router, h *harness)) *harness {
	t.Helper()

	h := &harness{store: credential.NewMemoryStore()}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.hits.Add(1)
			next.ServeHTTP(w, r)
		})
	})
	routes(router, h)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	h.client = httpclient.New(httpclient.Options{
		BaseURL:     server.URL,
		Credentials: h.store,
		OnUnauthorized: func(attemptedPath string) {
			h.hookPath.Store(attemptedPath)
		},
	})
	return h
}

/*
TestClient_AttachesBearerAndRequestID checks the outbound headers on an
authenticated call.
*/
func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	ctx := context.Background()
	tok := freshToken(t)

	var gotAuth, gotReqID string
	h := newHarness(t, func(r chi.Router, h *harness) {
		r.Get("/leagues/public", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotReqID = r.Header.Get("X-Request-Id")
			w.Write([]byte(`[]`))
		})
	})
	require.NoError(t, h.store.Save(ctx, tok))

	var out []struct{}
	require.NoError(t, h.client.Get(ctx, "/leagues/public", &out))

	assert.Equal(t, "Bearer "+tok, gotAuth)
	assert.NotEmpty(t, gotReqID)
}

/*
TestClient_Unauthorized_ProtectedPath verifies the teardown side of the 401
asymmetry: credential cleared, hook invoked with the attempted path, error
classified as SESSION_EXPIRED.
*/
func TestClient_Unauthorized_ProtectedPath(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t, func(r chi.Router, h *harness) {
		r.Get("/leagues/public", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	})
	require.NoError(t, h.store.Save(ctx, freshToken(t)))

	err := h.client.Get(ctx, "/leagues/public", nil)
	assert.True(t, apperr.IsCode(err, apperr.CodeSessionExpired))

	_, loadErr := h.store.Load(ctx)
	assert.ErrorIs(t, loadErr, credential.ErrNoCredential)
	assert.Equal(t, "/leagues/public", h.hookPath.Load())
}

/*
TestClient_Unauthorized_AuthPath verifies the other side: a 401 from signin
is a plain credential error and the stored session survives.
*/
func TestClient_Unauthorized_AuthPath(t *testing.T) {
	ctx := context.Background()
	tok := freshToken(t)

	h := newHarness(t, func(r chi.Router, h *harness) {
		r.Post("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Bad credentials"}`))
		})
	})
	require.NoError(t, h.store.Save(ctx, tok))

	err := h.client.Post(ctx, "/auth/signin", map[string]string{"username": "x"}, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
	assert.Equal(t, "Bad credentials", err.Error())

	// Credential untouched, hook not fired.
	stored, loadErr := h.store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Equal(t, tok, stored)
	assert.Nil(t, h.hookPath.Load())
}

/*
TestClient_LocallyExpired_FailsFast checks that an expired credential on a
protected path never reaches the network.
*/
func TestClient_LocallyExpired_FailsFast(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t, func(r chi.Router, h *harness) {
		r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})
	})
	require.NoError(t, h.store.Save(ctx, staleToken(t)))

	err := h.client.Get(ctx, "/events", nil)
	assert.True(t, apperr.IsCode(err, apperr.CodeSessionExpired))
	assert.Equal(t, int64(0), h.hits.Load())
	assert.Equal(t, "/events", h.hookPath.Load())
}

/*
TestClient_LocallyExpired_DoesNotBlockSignIn checks the auth-path exemption:
a stale leftover credential must never prevent a fresh login.
*/
func TestClient_LocallyExpired_DoesNotBlockSignIn(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t, func(r chi.Router, h *harness) {
		r.Post("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token":"new"}`))
		})
	})
	require.NoError(t, h.store.Save(ctx, staleToken(t)))

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, h.client.Post(ctx, "/auth/signin", map[string]string{}, &out))
	assert.Equal(t, "new", out.Token)
	assert.Equal(t, int64(1), h.hits.Load())
}

/*
TestClient_FailureClassification maps the remaining statuses onto the
taxonomy, preferring the server message over the generic fallback.
*/
func TestClient_FailureClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{"server_message_preferred", http.StatusInternalServerError, `{"message":"boom"}`, apperr.CodeServer, "boom"},
		{"generic_fallback", http.StatusBadGateway, ``, apperr.CodeServer, "502: Bad Gateway"},
		{"not_found", http.StatusNotFound, `{"message":"League not found"}`, apperr.CodeNotFound, "League not found"},
		{"conflict", http.StatusConflict, `{"message":"Already a member"}`, apperr.CodeConflict, "Already a member"},
		{"validation", http.StatusBadRequest, `{"message":"Missing field"}`, apperr.CodeValidation, "Missing field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, func(r chi.Router, h *harness) {
				r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					w.Write([]byte(tt.body))
				})
			})

			err := h.client.Get(context.Background(), "/events", nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

/*
TestClient_TransportFailure verifies connectivity errors are distinguishable
from server-side failures and leave session state untouched.
*/
func TestClient_TransportFailure(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(ctx, freshToken(t)))

	// Point at a server that is already gone.
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := httpclient.New(httpclient.Options{
		BaseURL:     server.URL,
		Credentials: store,
	})

	err := client.Get(ctx, "/events", nil)
	assert.True(t, apperr.IsCode(err, apperr.CodeNetwork))

	_, loadErr := store.Load(ctx)
	assert.NoError(t, loadErr)
}
