// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package nav holds the view registry and the access guard.

Architecture:

  - View: A named destination with a static access [Requirement]. The
    registry mirrors the application's route table.
  - Guard: A pure decision table over (view, session state). It owns no
    state of its own beyond the one-time wait for session restoration.
  - Navigator: The surface that actually moves the user. The guard decides,
    the navigator executes; the two never merge.
*/
package nav

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// # View Registry

// View names. The string values double as the user-visible route names.
const (
	ViewHome            = "home"
	ViewLogin           = "login"
	ViewRegister        = "register"
	ViewDashboard       = "dashboard"
	ViewLeagues         = "leagues"
	ViewPicks           = "picks"
	ViewVerifyEmail     = "verify-email"
	ViewEmailUnverified = "email-unverified"
	ViewForgotPassword  = "forgot-password"
	ViewResetPassword   = "reset-password"
	ViewAbout           = "about"
)

// QueryRedirect carries the path to resume after a forced login.
// QueryToken carries the one-time token for token-gated views.
const (
	QueryRedirect = "redirect"
	QueryToken    = "token"
)

// Requirement is a view's static access rule set.
type Requirement struct {
	// RequiresAuth gates the view on an active session.
	RequiresAuth bool
	// RequiresVerified additionally gates on a confirmed email.
	RequiresVerified bool
	// RequiresGuest inverts the gate: authenticated users are bounced to
	// the dashboard (login and register make no sense when signed in).
	RequiresGuest bool
}

// View is one destination in the application.
type View struct {
	Name string
	Path string
	Requirement

	// TokenGated views are reachable only through an emailed link and are
	// meaningless without their token query parameter.
	TokenGated bool
	// TokenFallback is where a token-less visit to a gated view lands.
	TokenFallback string
}

// Registry returns the full view table.
func Registry() map[string]View {
	views := []View{
		{Name: ViewHome, Path: "/"},
		{Name: ViewAbout, Path: "/about"},
		{Name: ViewLogin, Path: "/login", Requirement: Requirement{RequiresGuest: true}},
		{Name: ViewRegister, Path: "/register", Requirement: Requirement{RequiresGuest: true}},
		{Name: ViewForgotPassword, Path: "/forgot-password", Requirement: Requirement{RequiresGuest: true}},
		{Name: ViewResetPassword, Path: "/reset-password", Requirement: Requirement{RequiresGuest: true},
			TokenGated: true, TokenFallback: ViewForgotPassword},
		{Name: ViewVerifyEmail, Path: "/verify-email",
			TokenGated: true, TokenFallback: ViewLogin},
		{Name: ViewDashboard, Path: "/dashboard", Requirement: Requirement{RequiresAuth: true}},
		{Name: ViewLeagues, Path: "/leagues", Requirement: Requirement{RequiresAuth: true}},
		{Name: ViewPicks, Path: "/picks", Requirement: Requirement{RequiresAuth: true, RequiresVerified: true}},
		{Name: ViewEmailUnverified, Path: "/email-unverified", Requirement: Requirement{RequiresAuth: true}},
	}

	registry := make(map[string]View, len(views))
	for _, view := range views {
		registry[view.Name] = view
	}
	return registry
}

// # Guard

// SessionState is the slice of the session manager the guard reads.
type SessionState interface {
	AwaitReady(ctx context.Context, timeout time.Duration) bool
	IsAuthenticated() bool
	IsEmailConfirmed() bool
}

// Target is a requested navigation: a view plus its query parameters.
type Target struct {
	View  string
	Query url.Values
}

// Decision is the guard's verdict on a [Target].
type Decision struct {
	// Allow is true when navigation proceeds to the requested view.
	Allow bool
	// Redirect names the view to land on instead when Allow is false.
	Redirect string
	// Query carries parameters for the redirect destination.
	Query url.Values
}

// DefaultReadyTimeout bounds the wait for session restoration before the
// first guarded decision. Restoration failing to settle in time is treated
// as anonymous; the guard never hangs a navigation.
const DefaultReadyTimeout = 5 * time.Second

// Guard evaluates access rules against live session state.
type Guard struct {
	registry     map[string]View
	session      SessionState
	readyTimeout time.Duration
	waitOnce     sync.Once
}

// NewGuard constructs a [Guard] over the standard registry.
func NewGuard(session SessionState) *Guard {
	return NewGuardWithTimeout(session, DefaultReadyTimeout)
}

// NewGuardWithTimeout overrides the restoration wait bound.
func NewGuardWithTimeout(session SessionState, readyTimeout time.Duration) *Guard {
	return &Guard{
		registry:     Registry(),
		session:      session,
		readyTimeout: readyTimeout,
	}
}

/*
Decide evaluates a navigation target against the decision table.

Description: Before the first verdict the guard waits, once per process and
with a bounded timeout, for session restoration to settle so a restored
session is never misread as anonymous. The rules apply first match wins:

 1. Auth required and anonymous: redirect to login, carrying the attempted
    path for resumption.
 2. Auth satisfied but email verification required and missing: redirect to
    the unverified notice.
 3. Guest-only view visited while authenticated: redirect to the dashboard.
 4. Otherwise allow.

Token-gated views short-circuit earlier still: without their token the view
cannot render at all, so the visit lands on the gate's fallback.

Parameters:
  - ctx: context.Context
  - target: the requested view and query

Returns:
  - Decision: allow, or the redirect to take instead
*/
func (guard *Guard) Decide(ctx context.Context, target Target) Decision {
	guard.waitOnce.Do(func() {
		guard.session.AwaitReady(ctx, guard.readyTimeout)
	})

	view, known := guard.registry[target.View]
	if !known {
		return Decision{Redirect: ViewHome}
	}

	if view.TokenGated && target.Query.Get(QueryToken) == "" {
		return Decision{Redirect: view.TokenFallback}
	}

	authenticated := guard.session.IsAuthenticated()

	// ── 1. Auth wall ─────────────────────────────────────────────────────
	if view.RequiresAuth && !authenticated {
		query := url.Values{}
		query.Set(QueryRedirect, view.Path)
		return Decision{Redirect: ViewLogin, Query: query}
	}

	// ── 2. Verification wall ─────────────────────────────────────────────
	if view.RequiresAuth && view.RequiresVerified && !guard.session.IsEmailConfirmed() {
		return Decision{Redirect: ViewEmailUnverified}
	}

	// ── 3. Guest-only views ──────────────────────────────────────────────
	if view.RequiresGuest && authenticated {
		return Decision{Redirect: ViewDashboard}
	}

	// ── 4. Allow ─────────────────────────────────────────────────────────
	return Decision{Allow: true}
}

// # Navigator

// Navigator executes navigations the guard has decided on.
type Navigator interface {
	Go(view string, query url.Values)
}

// LoginRedirector adapts a [Navigator] to the session manager's teardown
// hook: forced logouts land on the login view with the attempted path.
type LoginRedirector struct {
	Navigator Navigator
}

// ToLogin sends the user to login, preserving the path they were visiting.
func (redirector LoginRedirector) ToLogin(redirect string) {
	query := url.Values{}
	if redirect != "" {
		query.Set(QueryRedirect, redirect)
	}
	redirector.Navigator.Go(ViewLogin, query)
}
