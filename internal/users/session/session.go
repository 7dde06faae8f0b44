// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package session owns the authenticated identity and the credential
lifecycle.

Architecture:

  - Session: The in-memory identity. Either fully absent (anonymous) or
    fully populated; no partial user without an id ever exists.
  - Manager: The process-wide state holder. Explicitly constructed and
    injected, never a package-level singleton. Its lifecycle is owned by
    the composition root.
  - Teardown: Destroying the session is unconditional and idempotent. A
    failed logout call, an expired credential, or an external removal all
    converge on the same empty state.
*/
package session

// RoleAdmin is the administrator role tag as the backend spells it.
const RoleAdmin = "ROLE_ADMIN"

// Session is the in-memory representation of the authenticated user.
type Session struct {
	ID             int64
	Username       string
	Email          string
	EmailConfirmed bool
	Roles          []string

	// Optional profile fields, merged in best-effort after sign-in.
	FirstName string
	LastName  string
	AvatarURL string
}

// HasRole reports whether the session carries the role tag.
func (s *Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s.HasRole(RoleAdmin)
}

// normalizeRoles upholds the "role set is never nil" invariant at the one
// place sessions are built.
func normalizeRoles(roles []string) []string {
	if roles == nil {
		return []string{}
	}
	return roles
}
