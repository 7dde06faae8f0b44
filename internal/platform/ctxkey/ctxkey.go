// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

// Package ctxkey defines typed context keys used for per-invocation values.
//
// # Safety
//
// Using a private, unexported type for keys prevents collisions with
// third-party packages that might also use context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-Id correlation value.
	KeyRequestID key = "request_id"

	// KeyLogger is the context key for a scoped [*log/slog.Logger].
	KeyLogger key = "logger"
)
