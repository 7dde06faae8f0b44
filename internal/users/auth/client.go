// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package auth

import (
	"context"
	"net/url"
	"strings"

	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/internal/platform/httpclient"
)

// Client calls the /auth resource.
type Client struct {
	http *httpclient.Client
}

// NewClient constructs an auth [Client] over the shared HTTP choke point.
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

/*
SignIn exchanges credentials for a bearer token and the identity fields.

Returns:
  - *SignInResponse: token plus identity
  - error: apperr.CodeUnauthorized on rejected credentials
*/
func (client *Client) SignIn(ctx context.Context, creds Credentials) (*SignInResponse, error) {
	var resp SignInResponse
	if err := client.http.Post(ctx, "/auth/signin", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

/*
SignUp registers a new account. No session is established: the user must
confirm their email before the first sign-in.

Description: The backend reports duplicates with a message naming the
offending field; that string difference is promoted to two distinguishable
error kinds here so the UI never parses messages.

Returns:
  - error: apperr.CodeValidation on locally-rejected input,
    apperr.CodeUsernameTaken, apperr.CodeEmailTaken, or the underlying
    failure
*/
func (client *Client) SignUp(ctx context.Context, input RegisterInput) error {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return err
	}

	err := client.http.Post(ctx, "/auth/signup", input, nil)
	if err == nil {
		return nil
	}

	// Promote the two duplicate-identity cases to typed conflicts.
	ae := apperr.As(err)
	if ae != nil && (ae.Code == apperr.CodeConflict || ae.Code == apperr.CodeValidation) {
		msg := strings.ToLower(ae.Message)
		switch {
		case strings.Contains(msg, "username"):
			return apperr.UsernameTaken()
		case strings.Contains(msg, "email"):
			return apperr.EmailTaken()
		}
	}

	return err
}

// SignOut invalidates the server-side session. Callers clear local state
// regardless of the outcome.
func (client *Client) SignOut(ctx context.Context) error {
	return client.http.Post(ctx, "/auth/logout", nil, nil)
}

// ConfirmEmail redeems an email confirmation token.
func (client *Client) ConfirmEmail(ctx context.Context, confirmToken string) error {
	path := "/auth/confirm?token=" + url.QueryEscape(confirmToken)
	return client.http.Get(ctx, path, nil)
}

// ResendVerification asks the backend to send a fresh confirmation email.
func (client *Client) ResendVerification(ctx context.Context, email string) error {
	payload := map[string]string{"email": strings.ToLower(strings.TrimSpace(email))}
	return client.http.Post(ctx, "/auth/resend-verification", payload, nil)
}

// # Password Recovery

// ForgotPassword starts the recovery flow for the given email.
func (client *Client) ForgotPassword(ctx context.Context, email string) error {
	payload := map[string]string{"email": strings.ToLower(strings.TrimSpace(email))}
	return client.http.Post(ctx, "/auth/forgot-password", payload, nil)
}

// ValidateResetToken checks a reset token before showing the reset form.
func (client *Client) ValidateResetToken(ctx context.Context, resetToken string) error {
	path := "/auth/validate-reset-token?token=" + url.QueryEscape(resetToken)
	return client.http.Get(ctx, path, nil)
}

// ResetPassword completes the recovery flow.
func (client *Client) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	payload := map[string]string{
		"token":           resetToken,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	return client.http.Post(ctx, "/auth/reset-password", payload, nil)
}
