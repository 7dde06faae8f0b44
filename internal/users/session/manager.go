// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/internal/platform/credential"
	"github.com/fantasyfightleague/fflcli/internal/platform/token"
	"github.com/fantasyfightleague/fflcli/internal/users/account"
	"github.com/fantasyfightleague/fflcli/internal/users/auth"
)

// # Contracts

// AuthAPI is the slice of the auth client the manager drives.
type AuthAPI interface {
	SignIn(ctx context.Context, creds auth.Credentials) (*auth.SignInResponse, error)
	SignUp(ctx context.Context, input auth.RegisterInput) error
	SignOut(ctx context.Context) error
	ConfirmEmail(ctx context.Context, confirmToken string) error
	ResendVerification(ctx context.Context, email string) error
}

// ProfileAPI is the probe used to validate and hydrate a restored session.
type ProfileAPI interface {
	Profile(ctx context.Context) (*account.Profile, error)
}

// Navigator is the minimal navigation surface the manager needs for forced
// teardowns. The full route table lives elsewhere; keeping this interface
// here avoids an import cycle with the guard.
type Navigator interface {
	// ToLogin navigates to the login view, carrying the path the user was
	// trying to reach so it can be resumed after sign-in.
	ToLogin(redirect string)
}

// Manager owns the [Session] and the persisted credential together, keeping
// the two consistent through every lifecycle transition.
type Manager struct {
	authAPI     AuthAPI
	profileAPI  ProfileAPI
	credentials credential.Store
	navigator   Navigator
	log         *slog.Logger

	mu      sync.RWMutex
	current *Session
	lastErr error

	initOnce sync.Once
	ready    chan struct{}
}

// NewManager constructs a session [Manager]. The navigator may be nil when
// no navigation surface exists (library use).
func NewManager(
	authAPI AuthAPI,
	profileAPI ProfileAPI,
	credentials credential.Store,
	navigator Navigator,
	log *slog.Logger,
) *Manager {
	return &Manager{
		authAPI:     authAPI,
		profileAPI:  profileAPI,
		credentials: credentials,
		navigator:   navigator,
		log:         log,
		ready:       make(chan struct{}),
	}
}

// # Lifecycle Operations

/*
Login authenticates against the backend and establishes the session.

Description: On success the bearer token is persisted first, then the
identity fields populate the session, then the full profile is merged in
best-effort: a failed profile fetch degrades to the sign-in fields and is
only logged.

Returns:
  - *Session: the established session
  - error: the backend's credential rejection, or a transport failure
*/
func (manager *Manager) Login(ctx context.Context, creds auth.Credentials) (*Session, error) {
	resp, err := manager.authAPI.SignIn(ctx, creds)
	if err != nil {
		manager.setErr(err)
		return nil, err
	}

	if err := manager.credentials.Save(ctx, resp.Token); err != nil {
		manager.setErr(err)
		return nil, err
	}

	established := &Session{
		ID:             resp.ID,
		Username:       resp.Username,
		Email:          resp.Email,
		EmailConfirmed: resp.EmailConfirmed,
		Roles:          normalizeRoles(resp.Roles),
	}

	// Best-effort profile merge. The session is already valid without it.
	if profile, err := manager.profileAPI.Profile(ctx); err != nil {
		manager.log.Warn("profile_merge_failed", slog.Any("error", err))
	} else {
		established.FirstName = profile.FirstName
		established.LastName = profile.LastName
		established.AvatarURL = profile.AvatarURL
		established.EmailConfirmed = profile.EmailConfirmed
		if len(profile.Roles) > 0 {
			established.Roles = normalizeRoles(profile.Roles)
		}
	}

	manager.mu.Lock()
	manager.current = established
	manager.lastErr = nil
	manager.mu.Unlock()

	manager.log.Info("session_established", slog.String("username", established.Username))
	return established, nil
}

// Register forwards a normalized sign-up. No session is established: the
// account must confirm its email before the first login.
func (manager *Manager) Register(ctx context.Context, input auth.RegisterInput) error {
	if err := manager.authAPI.SignUp(ctx, input); err != nil {
		manager.setErr(err)
		return err
	}
	return nil
}

/*
Logout ends the session.

Description: The backend call is attempted but its outcome is irrelevant to
local state: the in-memory session and the persisted credential are
cleared unconditionally. Logout must never leave stale session state.
*/
func (manager *Manager) Logout(ctx context.Context) {
	if err := manager.authAPI.SignOut(ctx); err != nil {
		manager.log.Warn("logout_backend_call_failed", slog.Any("error", err))
	}

	manager.Teardown(ctx)
}

// ConfirmEmail redeems a confirmation token. When a session is active its
// email-confirmed flag flips in place.
func (manager *Manager) ConfirmEmail(ctx context.Context, confirmToken string) error {
	if err := manager.authAPI.ConfirmEmail(ctx, confirmToken); err != nil {
		manager.setErr(err)
		return err
	}

	manager.mu.Lock()
	if manager.current != nil {
		manager.current.EmailConfirmed = true
	}
	manager.mu.Unlock()
	return nil
}

// ResendVerification asks for a fresh confirmation email.
func (manager *Manager) ResendVerification(ctx context.Context, email string) error {
	if err := manager.authAPI.ResendVerification(ctx, email); err != nil {
		manager.setErr(err)
		return err
	}
	return nil
}

// # Startup Restoration

/*
Initialize restores the session from the persisted credential, at most once
per process lifetime.

Description: Runs before the first guarded navigation. A missing credential
leaves the session anonymous. A locally-expired credential is discarded
without a network round trip. Otherwise the profile endpoint validates the
credential server-side and hydrates the full user.

The error asymmetry is deliberate and load-bearing: an auth rejection (401)
proves the credential is dead and clears it (fail closed); an
infrastructure failure proves nothing, so the credential survives for the
next launch while this process stays anonymous (fail open).

Concurrent and repeated calls share the single flight; all of them return
after it settles.
*/
func (manager *Manager) Initialize(ctx context.Context) {
	manager.initOnce.Do(func() {
		defer close(manager.ready)
		manager.restore(ctx)
	})

	<-manager.ready
}

func (manager *Manager) restore(ctx context.Context) {

	// ── 1. Credential present? ───────────────────────────────────────────
	stored, err := manager.credentials.Load(ctx)
	if err != nil {
		if !errors.Is(err, credential.ErrNoCredential) {
			manager.log.Warn("credential_load_failed", slog.Any("error", err))
		}
		return
	}

	// ── 2. Local expiry check, no network needed ─────────────────────────
	if token.IsExpired(stored) {
		manager.log.Info("stored_credential_expired")
		if err := manager.credentials.Clear(ctx); err != nil {
			manager.log.Warn("credential_clear_failed", slog.Any("error", err))
		}
		return
	}

	// ── 3. Server-side validation + hydration ────────────────────────────
	profile, err := manager.profileAPI.Profile(ctx)
	if err != nil {
		code := apperr.CodeOf(err)
		if code == apperr.CodeSessionExpired || code == apperr.CodeUnauthorized {
			// Fail closed: the server rejected the credential.
			manager.log.Info("stored_credential_rejected")
			if err := manager.credentials.Clear(ctx); err != nil {
				manager.log.Warn("credential_clear_failed", slog.Any("error", err))
			}
			return
		}

		// Fail open: infrastructure error. Keep the credential for the
		// next launch; this process stays anonymous.
		manager.log.Warn("session_restore_degraded", slog.Any("error", err))
		return
	}

	manager.mu.Lock()
	manager.current = &Session{
		ID:             profile.ID,
		Username:       profile.Username,
		Email:          profile.Email,
		EmailConfirmed: profile.EmailConfirmed,
		Roles:          normalizeRoles(profile.Roles),
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		AvatarURL:      profile.AvatarURL,
	}
	manager.mu.Unlock()

	manager.log.Info("session_restored", slog.String("username", profile.Username))
}

// Ready returns a channel closed once [Manager.Initialize] has settled.
func (manager *Manager) Ready() <-chan struct{} {
	return manager.ready
}

// AwaitReady blocks until initialization settles or the timeout elapses.
// It reports whether initialization actually completed; callers proceed
// with whatever session state is available either way.
func (manager *Manager) AwaitReady(ctx context.Context, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-manager.ready:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// # Forced Teardown

// Teardown clears the in-memory session and the persisted credential. Safe
// to call in any state, any number of times.
func (manager *Manager) Teardown(ctx context.Context) {
	if err := manager.credentials.Clear(ctx); err != nil {
		manager.log.Warn("credential_clear_failed", slog.Any("error", err))
	}

	manager.mu.Lock()
	manager.current = nil
	manager.lastErr = nil
	manager.mu.Unlock()
}

// HandleUnauthorized is the hook the HTTP client invokes on a 401 from a
// protected endpoint: full teardown, then back to login carrying the path
// that was being visited.
func (manager *Manager) HandleUnauthorized(attemptedPath string) {
	manager.Teardown(context.Background())

	if manager.navigator != nil {
		manager.navigator.ToLogin(attemptedPath)
	}
}

// WatchCredential observes the credential store until ctx ends. An external
// removal, such as another process logging out of a shared store, forces local
// teardown without touching the already-removed credential.
func (manager *Manager) WatchCredential(ctx context.Context) {
	events := manager.credentials.Watch(ctx)

	go func() {
		for event := range events {
			if !event.Removed {
				continue
			}
			manager.mu.Lock()
			wasAuthenticated := manager.current != nil
			manager.current = nil
			manager.mu.Unlock()

			if wasAuthenticated {
				manager.log.Info("session_torn_down_externally")
			}
		}
	}()
}

// # Read Access

// Current returns a copy of the active session, or nil when anonymous.
func (manager *Manager) Current() *Session {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	if manager.current == nil {
		return nil
	}
	copied := *manager.current
	copied.Roles = append([]string(nil), manager.current.Roles...)
	return &copied
}

// IsAuthenticated reports whether a session is active.
func (manager *Manager) IsAuthenticated() bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.current != nil
}

// IsEmailConfirmed reports whether the active session's email is confirmed.
// Anonymous sessions report false.
func (manager *Manager) IsEmailConfirmed() bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.current != nil && manager.current.EmailConfirmed
}

// LastError returns the most recent operation failure, cleared by the next
// successful login.
func (manager *Manager) LastError() error {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastErr
}

func (manager *Manager) setErr(err error) {
	manager.mu.Lock()
	manager.lastErr = err
	manager.mu.Unlock()
}
