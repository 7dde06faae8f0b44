// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/internal/platform/credential"
	"github.com/fantasyfightleague/fflcli/internal/users/account"
	"github.com/fantasyfightleague/fflcli/internal/users/auth"
	"github.com/fantasyfightleague/fflcli/internal/users/session"
)

// # Fakes

type fakeAuth struct {
	signInResp *auth.SignInResponse
	signInErr  error
	signOutErr error
	confirmErr error
	resendErr  error
	signUpErr  error

	signOutCalls atomic.Int64
}

func (f *fakeAuth) SignIn(_ context.Context, _ auth.Credentials) (*auth.SignInResponse, error) {
	return f.signInResp, f.signInErr
}

func (f *fakeAuth) SignUp(_ context.Context, _ auth.RegisterInput) error { return f.signUpErr }

func (f *fakeAuth) SignOut(_ context.Context) error {
	f.signOutCalls.Add(1)
	return f.signOutErr
}

func (f *fakeAuth) ConfirmEmail(_ context.Context, _ string) error { return f.confirmErr }

func (f *fakeAuth) ResendVerification(_ context.Context, _ string) error { return f.resendErr }

type fakeProfiles struct {
	profile *account.Profile
	err     error
	calls   atomic.Int64
}

func (f *fakeProfiles) Profile(_ context.Context) (*account.Profile, error) {
	f.calls.Add(1)
	return f.profile, f.err
}

type fakeNavigator struct {
	mu       sync.Mutex
	redirect string
	called   bool
}

func (f *fakeNavigator) ToLogin(redirect string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.redirect = redirect
	f.called = true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mintToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

func okSignIn(t *testing.T) *auth.SignInResponse {
	t.Helper()
	return &auth.SignInResponse{
		Token:          mintToken(t, time.Hour),
		Type:           "Bearer",
		ID:             42,
		Username:       "ada",
		Email:          "ada@example.com",
		EmailConfirmed: true,
		Roles:          auth.RoleList{"ROLE_USER"},
	}
}

// # Lifecycle

/*
TestManager_Login_EstablishesSessionAndPersistsToken covers the happy path:
token saved first, session populated from the sign-in response, profile
fields merged in.
*/
func TestManager_Login_EstablishesSessionAndPersistsToken(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	resp := okSignIn(t)

	manager := session.NewManager(
		&fakeAuth{signInResp: resp},
		&fakeProfiles{profile: &account.Profile{
			ID: 42, Username: "ada", Email: "ada@example.com",
			EmailConfirmed: true, Roles: auth.RoleList{"ROLE_USER"},
			FirstName: "Ada", LastName: "Lovelace",
		}},
		store, nil, discardLogger(),
	)

	got, err := manager.Login(ctx, auth.Credentials{Username: "ada", Password: "pw"})
	require.NoError(t, err)

	stored, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Equal(t, resp.Token, stored)

	assert.True(t, manager.IsAuthenticated())
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
}

/*
TestManager_Login_SurvivesProfileMergeFailure checks the best-effort merge:
a broken profile endpoint degrades to the sign-in fields, never fails login.
*/
func TestManager_Login_SurvivesProfileMergeFailure(t *testing.T) {
	manager := session.NewManager(
		&fakeAuth{signInResp: okSignIn(t)},
		&fakeProfiles{err: apperr.Server(500, "boom")},
		credential.NewMemoryStore(), nil, discardLogger(),
	)

	got, err := manager.Login(context.Background(), auth.Credentials{Username: "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)
	assert.Empty(t, got.FirstName)
	assert.True(t, manager.IsAuthenticated())
}

/*
TestManager_Login_RejectionLeavesAnonymous verifies no partial state leaks
out of a failed sign-in.
*/
func TestManager_Login_RejectionLeavesAnonymous(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()

	manager := session.NewManager(
		&fakeAuth{signInErr: apperr.Unauthorized("Invalid credentials")},
		&fakeProfiles{},
		store, nil, discardLogger(),
	)

	_, err := manager.Login(ctx, auth.Credentials{Username: "ada", Password: "wrong"})
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
	assert.False(t, manager.IsAuthenticated())

	_, loadErr := store.Load(ctx)
	assert.ErrorIs(t, loadErr, credential.ErrNoCredential)
}

/*
TestManager_Logout_ClearsStateEvenWhenBackendFails is the logout robustness
law: local state is gone no matter what the revocation call did.
*/
func TestManager_Logout_ClearsStateEvenWhenBackendFails(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	authAPI := &fakeAuth{
		signInResp: okSignIn(t),
		signOutErr: apperr.Network(errors.New("connection refused")),
	}

	manager := session.NewManager(authAPI, &fakeProfiles{err: apperr.Server(500, "")}, store, nil, discardLogger())
	_, err := manager.Login(ctx, auth.Credentials{Username: "ada"})
	require.NoError(t, err)

	manager.Logout(ctx)

	assert.Equal(t, int64(1), authAPI.signOutCalls.Load())
	assert.False(t, manager.IsAuthenticated())
	_, loadErr := store.Load(ctx)
	assert.ErrorIs(t, loadErr, credential.ErrNoCredential)
}

/*
TestManager_ConfirmEmail_FlipsActiveSessionFlag checks the in-place flag
update after a successful confirmation.
*/
func TestManager_ConfirmEmail_FlipsActiveSessionFlag(t *testing.T) {
	ctx := context.Background()
	resp := okSignIn(t)
	resp.EmailConfirmed = false

	manager := session.NewManager(
		&fakeAuth{signInResp: resp},
		&fakeProfiles{err: apperr.Server(500, "")},
		credential.NewMemoryStore(), nil, discardLogger(),
	)
	_, err := manager.Login(ctx, auth.Credentials{Username: "ada"})
	require.NoError(t, err)
	require.False(t, manager.IsEmailConfirmed())

	require.NoError(t, manager.ConfirmEmail(ctx, "confirm-token"))
	assert.True(t, manager.IsEmailConfirmed())
}

// # Startup Restoration

/*
TestManager_Initialize_NoCredential leaves the session anonymous without a
single network call.
*/
func TestManager_Initialize_NoCredential(t *testing.T) {
	profiles := &fakeProfiles{}
	manager := session.NewManager(&fakeAuth{}, profiles, credential.NewMemoryStore(), nil, discardLogger())

	manager.Initialize(context.Background())

	assert.False(t, manager.IsAuthenticated())
	assert.Equal(t, int64(0), profiles.calls.Load())
}

/*
TestManager_Initialize_ExpiredCredentialDiscardedLocally verifies the local
fast path: a stale token is cleared with zero network traffic.
*/
func TestManager_Initialize_ExpiredCredentialDiscardedLocally(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(ctx, mintToken(t, -time.Minute)))
	profiles := &fakeProfiles{}

	manager := session.NewManager(&fakeAuth{}, profiles, store, nil, discardLogger())
	manager.Initialize(ctx)

	assert.False(t, manager.IsAuthenticated())
	assert.Equal(t, int64(0), profiles.calls.Load())
	_, loadErr := store.Load(ctx)
	assert.ErrorIs(t, loadErr, credential.ErrNoCredential)
}

/*
TestManager_Initialize_RestoresValidSession is the happy restoration path:
fresh token, profile probe succeeds, full identity hydrated.
*/
func TestManager_Initialize_RestoresValidSession(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(ctx, mintToken(t, time.Hour)))

	manager := session.NewManager(
		&fakeAuth{},
		&fakeProfiles{profile: &account.Profile{
			ID: 42, Username: "ada", EmailConfirmed: true,
			Roles: auth.RoleList{"ROLE_USER", "ROLE_ADMIN"},
		}},
		store, nil, discardLogger(),
	)
	manager.Initialize(ctx)

	require.True(t, manager.IsAuthenticated())
	current := manager.Current()
	assert.Equal(t, int64(42), current.ID)
	assert.True(t, current.IsAdmin())
}

/*
TestManager_Initialize_FailClosedOnRejection: a server-side 401 proves the
credential dead, so it is removed.
*/
func TestManager_Initialize_FailClosedOnRejection(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(ctx, mintToken(t, time.Hour)))

	manager := session.NewManager(
		&fakeAuth{},
		&fakeProfiles{err: apperr.SessionExpired()},
		store, nil, discardLogger(),
	)
	manager.Initialize(ctx)

	assert.False(t, manager.IsAuthenticated())
	_, loadErr := store.Load(ctx)
	assert.ErrorIs(t, loadErr, credential.ErrNoCredential)
}

/*
TestManager_Initialize_FailOpenOnInfrastructureError: a transport failure
proves nothing, so the credential survives for the next launch while this
process stays anonymous.
*/
func TestManager_Initialize_FailOpenOnInfrastructureError(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	tok := mintToken(t, time.Hour)
	require.NoError(t, store.Save(ctx, tok))

	manager := session.NewManager(
		&fakeAuth{},
		&fakeProfiles{err: apperr.Network(errors.New("dial tcp: connection refused"))},
		store, nil, discardLogger(),
	)
	manager.Initialize(ctx)

	assert.False(t, manager.IsAuthenticated())
	stored, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Equal(t, tok, stored)
}

/*
TestManager_Initialize_AtMostOneProbe: concurrent and repeated calls share a
single flight; the profile endpoint sees exactly one request.
*/
func TestManager_Initialize_AtMostOneProbe(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(ctx, mintToken(t, time.Hour)))
	profiles := &fakeProfiles{profile: &account.Profile{ID: 1, Username: "ada"}}

	manager := session.NewManager(&fakeAuth{}, profiles, store, nil, discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			manager.Initialize(ctx)
		}()
	}
	wg.Wait()
	manager.Initialize(ctx)

	assert.Equal(t, int64(1), profiles.calls.Load())
	assert.True(t, manager.AwaitReady(ctx, time.Second))
}

// # Forced Teardown

/*
TestManager_HandleUnauthorized tears the session down and routes back to
login with the attempted path preserved.
*/
func TestManager_HandleUnauthorized(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	navigator := &fakeNavigator{}

	manager := session.NewManager(
		&fakeAuth{signInResp: okSignIn(t)},
		&fakeProfiles{err: apperr.Server(500, "")},
		store, navigator, discardLogger(),
	)
	_, err := manager.Login(ctx, auth.Credentials{Username: "ada"})
	require.NoError(t, err)

	manager.HandleUnauthorized("/leagues/7")

	assert.False(t, manager.IsAuthenticated())
	_, loadErr := store.Load(ctx)
	assert.ErrorIs(t, loadErr, credential.ErrNoCredential)

	navigator.mu.Lock()
	defer navigator.mu.Unlock()
	assert.True(t, navigator.called)
	assert.Equal(t, "/leagues/7", navigator.redirect)
}

/*
TestManager_WatchCredential_ExternalRemovalTearsDown: another process
clearing the shared store drops this one's session too.
*/
func TestManager_WatchCredential_ExternalRemovalTearsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := credential.NewMemoryStore()

	manager := session.NewManager(
		&fakeAuth{signInResp: okSignIn(t)},
		&fakeProfiles{err: apperr.Server(500, "")},
		store, nil, discardLogger(),
	)
	_, err := manager.Login(ctx, auth.Credentials{Username: "ada"})
	require.NoError(t, err)
	manager.WatchCredential(ctx)

	require.NoError(t, store.Clear(ctx))

	assert.Eventually(t, func() bool {
		return !manager.IsAuthenticated()
	}, time.Second, 10*time.Millisecond)
}
