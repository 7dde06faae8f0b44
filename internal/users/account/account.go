// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

// Package account is the typed client for the backend's /user endpoints:
// profile reads and the authenticated self-service mutations.
package account

import (
	"context"

	"github.com/fantasyfightleague/fflcli/internal/platform/httpclient"
	"github.com/fantasyfightleague/fflcli/internal/users/auth"
)

// Profile is the full authenticated user record.
type Profile struct {
	ID             int64         `json:"id"`
	Username       string        `json:"username"`
	Email          string        `json:"email"`
	EmailConfirmed bool          `json:"emailConfirmed"`
	Roles          auth.RoleList `json:"roles"`
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	AvatarURL      string        `json:"avatarUrl"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Client calls the /user resource.
type Client struct {
	http *httpclient.Client
}

// NewClient constructs an account [Client].
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// Profile fetches the authenticated user's record. Doubles as the server-side
// session probe during startup restoration.
func (client *Client) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := client.http.Get(ctx, "/user/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile saves the editable fields and returns the fresh record.
func (client *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := client.http.Put(ctx, "/user/profile", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangePassword rotates the password for the signed-in user.
func (client *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	payload := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return client.http.Put(ctx, "/user/change-password", payload, nil)
}

// ChangeEmail points the account at a new address. The new address starts
// unconfirmed; the backend sends a fresh verification email.
func (client *Client) ChangeEmail(ctx context.Context, newEmail, password string) error {
	payload := map[string]string{
		"newEmail": newEmail,
		"password": password,
	}
	return client.http.Put(ctx, "/user/change-email", payload, nil)
}
