// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package nav_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fantasyfightleague/fflcli/internal/nav"
)

// stubSession is a fixed session state; ready resolves immediately.
type stubSession struct {
	authenticated bool
	verified      bool
}

func (s stubSession) AwaitReady(_ context.Context, _ time.Duration) bool { return true }
func (s stubSession) IsAuthenticated() bool                              { return s.authenticated }
func (s stubSession) IsEmailConfirmed() bool                             { return s.verified }

// neverReady blocks restoration for the full timeout and reports anonymous.
type neverReady struct{}

func (neverReady) AwaitReady(_ context.Context, timeout time.Duration) bool {
	time.Sleep(timeout)
	return false
}
func (neverReady) IsAuthenticated() bool  { return false }
func (neverReady) IsEmailConfirmed() bool { return false }

/*
TestGuard_DecisionTable walks the access rules over every session state that
matters, first match wins.
*/
func TestGuard_DecisionTable(t *testing.T) {
	tests := []struct {
		name         string
		session      stubSession
		view         string
		query        url.Values
		wantAllow    bool
		wantRedirect string
	}{
		{
			name:      "public_view_anonymous",
			view:      nav.ViewHome,
			wantAllow: true,
		},
		{
			name:         "auth_wall_redirects_to_login",
			view:         nav.ViewDashboard,
			wantRedirect: nav.ViewLogin,
		},
		{
			name:      "auth_wall_passes_authenticated",
			session:   stubSession{authenticated: true},
			view:      nav.ViewDashboard,
			wantAllow: true,
		},
		{
			name:         "verification_wall_bounces_unverified",
			session:      stubSession{authenticated: true},
			view:         nav.ViewPicks,
			wantRedirect: nav.ViewEmailUnverified,
		},
		{
			name:      "verification_wall_passes_verified",
			session:   stubSession{authenticated: true, verified: true},
			view:      nav.ViewPicks,
			wantAllow: true,
		},
		{
			name:         "guest_view_bounces_authenticated",
			session:      stubSession{authenticated: true},
			view:         nav.ViewLogin,
			wantRedirect: nav.ViewDashboard,
		},
		{
			name:      "guest_view_passes_anonymous",
			view:      nav.ViewLogin,
			wantAllow: true,
		},
		{
			name:         "unknown_view_lands_home",
			view:         "no-such-view",
			wantRedirect: nav.ViewHome,
		},
		{
			name:         "reset_password_without_token",
			view:         nav.ViewResetPassword,
			wantRedirect: nav.ViewForgotPassword,
		},
		{
			name:      "reset_password_with_token",
			view:      nav.ViewResetPassword,
			query:     url.Values{nav.QueryToken: []string{"abc"}},
			wantAllow: true,
		},
		{
			name:         "verify_email_without_token",
			view:         nav.ViewVerifyEmail,
			wantRedirect: nav.ViewLogin,
		},
		{
			name:      "verify_email_with_token",
			view:      nav.ViewVerifyEmail,
			query:     url.Values{nav.QueryToken: []string{"abc"}},
			wantAllow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := nav.NewGuard(tt.session)
			query := tt.query
			if query == nil {
				query = url.Values{}
			}

			decision := guard.Decide(context.Background(), nav.Target{View: tt.view, Query: query})

			assert.Equal(t, tt.wantAllow, decision.Allow)
			if !tt.wantAllow {
				assert.Equal(t, tt.wantRedirect, decision.Redirect)
			}
		})
	}
}

/*
TestGuard_LoginRedirectCarriesPath checks the resumption contract: the auth
wall's redirect preserves where the user was going.
*/
func TestGuard_LoginRedirectCarriesPath(t *testing.T) {
	guard := nav.NewGuard(stubSession{})

	decision := guard.Decide(context.Background(), nav.Target{View: nav.ViewLeagues, Query: url.Values{}})

	assert.False(t, decision.Allow)
	assert.Equal(t, nav.ViewLogin, decision.Redirect)
	assert.Equal(t, "/leagues", decision.Query.Get(nav.QueryRedirect))
}

/*
TestGuard_NeverReadySessionDoesNotHang verifies the bounded wait: a stuck
restoration degrades to anonymous instead of blocking navigation forever,
and the wait happens only once.
*/
func TestGuard_NeverReadySessionDoesNotHang(t *testing.T) {
	guard := nav.NewGuardWithTimeout(neverReady{}, 50*time.Millisecond)

	start := time.Now()
	first := guard.Decide(context.Background(), nav.Target{View: nav.ViewDashboard, Query: url.Values{}})
	firstTook := time.Since(start)

	assert.False(t, first.Allow)
	assert.Equal(t, nav.ViewLogin, first.Redirect)
	assert.GreaterOrEqual(t, firstTook, 50*time.Millisecond)

	start = time.Now()
	guard.Decide(context.Background(), nav.Target{View: nav.ViewHome, Query: url.Values{}})
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

/*
TestLoginRedirector routes a forced teardown to login with the attempted
path attached.
*/
func TestLoginRedirector(t *testing.T) {
	var gotView string
	var gotQuery url.Values

	redirector := nav.LoginRedirector{Navigator: navFunc(func(view string, query url.Values) {
		gotView = view
		gotQuery = query
	})}

	redirector.ToLogin("/leagues/7")

	assert.Equal(t, nav.ViewLogin, gotView)
	assert.Equal(t, "/leagues/7", gotQuery.Get(nav.QueryRedirect))
}

type navFunc func(view string, query url.Values)

func (f navFunc) Go(view string, query url.Values) { f(view, query) }
