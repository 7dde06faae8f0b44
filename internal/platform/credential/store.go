// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package credential persists the bearer token that proves authentication to
the FFL backend.

Exactly one credential exists per profile. The store is shared mutable
state: another process (or another terminal on the same machine) may remove
it at any time, so every backend exposes an event-driven Watch channel
instead of forcing callers to poll.

Architecture:

  - Store: The contract. One token in, one token out, change notifications.
  - FileStore: Default backend, a 0600 JSON file under the user's home.
  - RedisStore: Shared backend; logout in one process tears down sessions
    everywhere via pub/sub invalidation.
  - MemoryStore: In-process backend for tests and ephemeral sessions.
*/
package credential

import (
	"context"
	"errors"
)

// ErrNoCredential is returned by Load when no token is persisted.
var ErrNoCredential = errors.New("credential: no stored credential")

// Event describes a change to the persisted credential.
type Event struct {
	// Removed is true when the credential was cleared; false when a new
	// token was saved.
	Removed bool
}

// Store is the persistence contract for the bearer credential.
type Store interface {
	// Load returns the persisted token, or [ErrNoCredential].
	Load(ctx context.Context) (string, error)

	// Save persists the token, replacing any previous one.
	Save(ctx context.Context, token string) error

	// Clear removes the persisted token. Clearing an absent credential is
	// not an error.
	Clear(ctx context.Context) error

	// Watch delivers change events until ctx is done. Events may be
	// dropped under backpressure; consumers re-Load on every event rather
	// than trusting a replayed history.
	Watch(ctx context.Context) <-chan Event
}

// broadcaster is the shared fan-out used by the local backends.
type broadcaster struct {
	watchers map[chan Event]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{watchers: make(map[chan Event]struct{})}
}

// add registers a watcher channel and returns it.
func (b *broadcaster) add() chan Event {
	ch := make(chan Event, 1)
	b.watchers[ch] = struct{}{}
	return ch
}

// remove unregisters a watcher channel.
func (b *broadcaster) remove(ch chan Event) {
	delete(b.watchers, ch)
}

// notify fans out an event without blocking. A watcher that has not drained
// its previous event just misses this one; it will re-Load on the next.
func (b *broadcaster) notify(event Event) {
	for ch := range b.watchers {
		select {
		case ch <- event:
		default:
		}
	}
}
