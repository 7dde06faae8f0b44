// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Redis key layout. One credential per profile plus one invalidation
// channel, so a logout in any process is observed by every other.
const (
	redisKeyFormat     = "ffl:credential:%s"
	redisChannelFormat = "ffl:credential_events:%s"

	eventSaved   = "saved"
	eventRemoved = "removed"
)

// RedisStore is the shared credential backend. Several ffl processes (or
// machines) pointed at the same Redis observe one session: the Go rendering
// of the browser's cross-tab storage event.
type RedisStore struct {
	client  *redis.Client
	profile string
	log     *slog.Logger
}

// NewRedisStore creates a Redis-backed credential store for the profile.
func NewRedisStore(client *redis.Client, profile string, log *slog.Logger) *RedisStore {
	return &RedisStore{
		client:  client,
		profile: profile,
		log:     log,
	}
}

// NewRedisClient dials Redis from a URL of the form redis://host:port/db.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("credential: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("credential: redis ping failed: %w", err)
	}

	return client, nil
}

func (store *RedisStore) key() string {
	return fmt.Sprintf(redisKeyFormat, store.profile)
}

func (store *RedisStore) channel() string {
	return fmt.Sprintf(redisChannelFormat, store.profile)
}

// Load returns the shared token, or [ErrNoCredential] when absent.
func (store *RedisStore) Load(ctx context.Context) (string, error) {
	tok, err := store.client.Get(ctx, store.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("credential: redis get failed: %w", err)
	}
	if tok == "" {
		return "", ErrNoCredential
	}
	return tok, nil
}

// Save stores the token and publishes a saved event. The token carries its
// own expiry claim, so no Redis TTL is set; stale tokens fail the local
// expiry check on Load.
func (store *RedisStore) Save(ctx context.Context, token string) error {
	if err := store.client.Set(ctx, store.key(), token, 0).Err(); err != nil {
		return fmt.Errorf("credential: redis set failed: %w", err)
	}

	if err := store.client.Publish(ctx, store.channel(), eventSaved).Err(); err != nil {
		store.log.Warn("credential_event_publish_failed", slog.Any("error", err))
	}
	return nil
}

// Clear removes the token and publishes a removed event so every other
// process tears down its in-memory session.
func (store *RedisStore) Clear(ctx context.Context) error {
	if err := store.client.Del(ctx, store.key()).Err(); err != nil {
		return fmt.Errorf("credential: redis del failed: %w", err)
	}

	if err := store.client.Publish(ctx, store.channel(), eventRemoved).Err(); err != nil {
		store.log.Warn("credential_event_publish_failed", slog.Any("error", err))
	}
	return nil
}

// Watch subscribes to the invalidation channel and relays events until ctx
// is done. Delivery is best-effort: consumers re-Load on every event.
func (store *RedisStore) Watch(ctx context.Context) <-chan Event {
	out := make(chan Event, 1)
	sub := store.client.Subscribe(ctx, store.channel())

	go func() {
		defer close(out)
		defer func() {
			if err := sub.Close(); err != nil {
				store.log.Warn("credential_subscription_close_failed", slog.Any("error", err))
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				event := Event{Removed: msg.Payload == eventRemoved}
				select {
				case out <- event:
				default:
				}
			}
		}
	}()

	return out
}
