// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileSchema is the on-disk shape: {"token": "..."}.
type fileSchema struct {
	Token string `json:"token"`
}

// FileStore persists the credential in a JSON file, typically
// ~/.ffl/credentials.json. The parent directory is created 0700 and the
// file written 0600: the token is a bearer secret.
type FileStore struct {
	path string

	mu       sync.Mutex
	watchers *broadcaster
}

// NewFileStore creates a file-backed credential store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		watchers: newBroadcaster(),
	}
}

// Load reads the persisted token. A missing or unreadable file, or a file
// holding an empty token, yields [ErrNoCredential].
func (store *FileStore) Load(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, err := os.ReadFile(store.path)
	if err != nil {
		return "", ErrNoCredential
	}

	var creds fileSchema
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", ErrNoCredential
	}
	if creds.Token == "" {
		return "", ErrNoCredential
	}

	return creds.Token, nil
}

// Save writes the token, creating the parent directory if needed.
func (store *FileStore) Save(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("credential: create config directory: %w", err)
	}

	data, err := json.MarshalIndent(fileSchema{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("credential: marshal credentials: %w", err)
	}

	if err := os.WriteFile(store.path, data, 0o600); err != nil {
		return fmt.Errorf("credential: write credentials: %w", err)
	}

	store.watchers.notify(Event{Removed: false})
	return nil
}

// Clear removes the credential file. An already-absent file is fine.
func (store *FileStore) Clear(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("credential: remove credentials: %w", err)
	}

	store.watchers.notify(Event{Removed: true})
	return nil
}

// Watch delivers in-process change events until ctx is done.
func (store *FileStore) Watch(ctx context.Context) <-chan Event {
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
