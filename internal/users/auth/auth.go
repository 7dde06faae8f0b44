// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package auth is the typed client for the backend's /auth endpoints.

It covers the full account lifecycle the backend exposes: sign-in, sign-up,
sign-out, email confirmation, and the password recovery flow.

The package deals only in wire shapes and error classification. Session
state lives in [session.Manager]; this client neither reads nor writes it.
*/
package auth

import (
	"encoding/json"
	"strings"

	"github.com/fantasyfightleague/fflcli/internal/platform/validate"
)

// # Wire Types

// RoleList is a defensive decoder for the backend's role field.
//
// The backend has been observed returning null or a bare string here. The
// invariant "role set is always a set of strings, never null" is enforced
// once, at this boundary, instead of with scattered nil checks.
type RoleList []string

// UnmarshalJSON coerces anything that is not a JSON array of strings to an
// empty list.
func (r *RoleList) UnmarshalJSON(data []byte) error {
	var roles []string
	if err := json.Unmarshal(data, &roles); err != nil {
		*r = RoleList{}
		return nil
	}
	if roles == nil {
		roles = []string{}
	}
	*r = roles
	return nil
}

// Credentials is the sign-in payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInResponse is the backend's JWT response.
type SignInResponse struct {
	Token          string   `json:"token"`
	Type           string   `json:"type"`
	ID             int64    `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	EmailConfirmed bool     `json:"emailConfirmed"`
	Roles          RoleList `json:"roles"`
}

// RegisterInput is the sign-up payload. Normalize trims every string field
// and lower-cases the email before it goes on the wire.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Normalize returns a copy with trimmed fields and a lower-cased email.
func (in RegisterInput) Normalize() RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	return in
}

// Validate checks the sign-up payload against the backend's account rules
// so every broken field is reported in one pass, before the wire.
func (in RegisterInput) Validate() error {
	v := &validate.Validator{}
	return v.
		Required("username", in.Username).
		MinLen("username", in.Username, 3).
		MaxLen("username", in.Username, 20).
		Required("email", in.Email).
		Email("email", in.Email).
		MaxLen("email", in.Email, 50).
		Required("password", in.Password).
		MinLen("password", in.Password, 6).
		MaxLen("password", in.Password, 40).
		Err()
}

// Message is the backend's generic acknowledgement envelope.
type Message struct {
	Message string `json:"message"`
}
