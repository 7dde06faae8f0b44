// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package apperr defines the centralized error taxonomy for the FFL client.

It provides a rich error type that bridges the gap between raw transport
failures and user-facing outcomes.

Architecture:

  - AppError: A struct containing a machine-readable ErrorCode and a
    user-friendly message.
  - Classification: Every failure leaving the HTTP layer is one of a small
    set of kinds (credential rejected, session expired, network, validation,
    conflict, server) so that callers branch on codes, never on strings.
  - Cause chain: The underlying error is preserved for logging and for
    [errors.Is]/[errors.As] traversal, but is never shown to the user.

Every error that leaves a service client should be wrapped as an [AppError]
to ensure consistent user-visible behavior.
*/
package apperr

import (
	"errors"
	"fmt"
)

// # Error Codes

const (
	// CodeUnauthorized marks rejected credentials on an auth endpoint.
	// The session is not affected.
	CodeUnauthorized = "UNAUTHORIZED"

	// CodeSessionExpired marks a locally-expired token or a 401 from a
	// protected endpoint. The session has been torn down.
	CodeSessionExpired = "SESSION_EXPIRED"

	// CodeNetwork marks a transport-level failure (DNS, refused connection,
	// timeout). The server's verdict is unknown, so session state is kept.
	CodeNetwork = "NETWORK"

	// CodeValidation marks a purely local rule violation that never
	// reached the network, or a 400/422 echoed back by the server.
	CodeValidation = "VALIDATION_ERROR"

	// CodeUsernameTaken and CodeEmailTaken are the two distinguishable
	// registration conflicts.
	CodeUsernameTaken = "USERNAME_TAKEN"
	CodeEmailTaken    = "EMAIL_TAKEN"

	// CodeEmailNotVerified marks actions gated on a confirmed email.
	CodeEmailNotVerified = "EMAIL_NOT_VERIFIED"

	// CodePicksClosed marks a pick submission after the event's window shut.
	CodePicksClosed = "PICKS_CLOSED"

	// CodeBudgetExceeded marks a roster whose total cost is over budget.
	CodeBudgetExceeded = "BUDGET_EXCEEDED"

	CodeNotFound = "NOT_FOUND"
	CodeConflict = "CONFLICT"
	CodeServer   = "SERVER_ERROR"
)

// AppError is the canonical error type for the FFL client.
//
// It carries a machine-readable code, a user-safe message, and the wrapped
// cause for logging.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "SESSION_EXPIRED").
	Code string
	// Message is a human-readable description safe to show the user.
	Message string
	// Fields carries per-field detail on validation failures.
	Fields []FieldError
	// Cause is the underlying error, kept for logs and errors.Is chains.
	Cause error
}

// FieldError pins a validation failure to the input field that caused it.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface. It returns the user-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Constructors

// Unauthorized creates a credential-rejected error. Login keeps its state.
func Unauthorized(msg string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: msg}
}

// SessionExpired creates the teardown-triggering error kind.
func SessionExpired() *AppError {
	return &AppError{Code: CodeSessionExpired, Message: "Your session has expired. Please sign in again."}
}

// Network wraps a transport-level failure.
func Network(cause error) *AppError {
	return &AppError{
		Code:    CodeNetwork,
		Message: "Could not reach the Fantasy Fight League server. Check your connection.",
		Cause:   cause,
	}
}

// Validation creates a local or server-echoed validation failure. Optional
// field errors pin the message to the offending inputs.
func Validation(msg string, fields ...FieldError) *AppError {
	return &AppError{Code: CodeValidation, Message: msg, Fields: fields}
}

// NotFound creates a missing-resource error for a named resource.
func NotFound(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: resource + " not found"}
}

// Conflict creates a duplicate/unique-constraint error.
func Conflict(msg string) *AppError {
	return &AppError{Code: CodeConflict, Message: msg}
}

// UsernameTaken is the registration conflict kind for a duplicate username.
func UsernameTaken() *AppError {
	return &AppError{Code: CodeUsernameTaken, Message: "That username is already taken"}
}

// EmailTaken is the registration conflict kind for a duplicate email.
func EmailTaken() *AppError {
	return &AppError{Code: CodeEmailTaken, Message: "That email is already registered"}
}

// EmailNotVerified gates pick submission and league joins.
func EmailNotVerified() *AppError {
	return &AppError{Code: CodeEmailNotVerified, Message: "Verify your email address before making picks"}
}

// PicksClosed marks submissions after the event lock.
func PicksClosed() *AppError {
	return &AppError{Code: CodePicksClosed, Message: "Picks are closed for this event"}
}

// BudgetExceeded marks a roster over its league budget.
func BudgetExceeded() *AppError {
	return &AppError{Code: CodeBudgetExceeded, Message: "The cost of your picks exceeds the budget"}
}

// Server wraps an unexpected backend failure with a generic message.
func Server(status int, msg string) *AppError {
	if msg == "" {
		msg = fmt.Sprintf("The server returned an unexpected error (status %d)", status)
	}
	return &AppError{Code: CodeServer, Message: msg}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// CodeOf returns the machine-readable code of err, or CodeServer when the
// error is not an [*AppError].
func CodeOf(err error) string {
	if ae := As(err); ae != nil {
		return ae.Code
	}
	return CodeServer
}

// IsCode reports whether err (or any error in its chain) carries the code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
