// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package credential

import (
	"context"
	"sync"
)

// MemoryStore keeps the credential in process memory. Used by tests and by
// ephemeral sessions that must not touch the filesystem.
type MemoryStore struct {
	mu       sync.Mutex
	token    string
	watchers *broadcaster
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{watchers: newBroadcaster()}
}

// Load returns the held token, or [ErrNoCredential].
func (store *MemoryStore) Load(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.token == "" {
		return "", ErrNoCredential
	}
	return store.token, nil
}

// Save replaces the held token.
func (store *MemoryStore) Save(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.token = token
	store.watchers.notify(Event{Removed: false})
	return nil
}

// Clear drops the held token.
func (store *MemoryStore) Clear(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.token = ""
	store.watchers.notify(Event{Removed: true})
	return nil
}

// Watch delivers change events until ctx is done.
func (store *MemoryStore) Watch(ctx context.Context) <-chan Event {
	store.mu.Lock()
	ch := store.watchers.add()
	store.mu.Unlock()

	go func() {
		<-ctx.Done()
		store.mu.Lock()
		store.watchers.remove(ch)
		store.mu.Unlock()
		close(ch)
	}()

	return ch
}
