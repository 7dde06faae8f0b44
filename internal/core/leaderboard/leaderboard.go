// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package leaderboard is the typed client for league standings.

Standings views assemble several independent reads (global table, current
event table, the user's own position). Those are best-effort by contract: a
failed sub-fetch degrades to its empty default and logs, it never fails the
view. [Client.Overview] encodes that policy once.
*/
package leaderboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fantasyfightleague/fflcli/internal/platform/httpclient"
)

// Position is the signed-in user's standing within one league.
//
// Position.Rank is a pointer: the backend reports null for users who have
// not scored yet, which is different from being ranked first.
type Position struct {
	Rank               *int `json:"position"`
	TotalPoints        int  `json:"totalPoints"`
	TotalParticipants  int  `json:"totalParticipants"`
	EventsParticipated int  `json:"eventsParticipated"`
}

// Entry is one row of a standings table.
type Entry struct {
	Position           int    `json:"position"`
	Username           string `json:"username"`
	TotalPoints        int    `json:"totalPoints"`
	EventsParticipated int    `json:"eventsParticipated"`
}

// HistoryItem is one past event's result for the user.
type HistoryItem struct {
	EventID   int64  `json:"eventId"`
	EventName string `json:"eventName"`
	Points    int    `json:"points"`
	Position  int    `json:"position"`
}

// Overview joins the three standing reads a league view renders.
type Overview struct {
	Mine   Position
	Global []Entry
	Event  []Entry
}

// Client calls the /leaderboard resource.
type Client struct {
	http *httpclient.Client
	log  *slog.Logger
}

// NewClient constructs a leaderboard [Client].
func NewClient(http *httpclient.Client, log *slog.Logger) *Client {
	return &Client{http: http, log: log}
}

// MyPosition returns the user's standing in a league. Best-effort: any
// failure degrades to the zero-value default and is logged.
func (client *Client) MyPosition(ctx context.Context, leagueID int64) Position {
	var out Position
	path := fmt.Sprintf("/leaderboard/my-position/%d", leagueID)
	if err := client.http.Get(ctx, path, &out); err != nil {
		client.log.Warn("leaderboard_my_position_failed",
			slog.Int64("league_id", leagueID),
			slog.Any("error", err),
		)
		return Position{}
	}
	return out
}

// Global returns the league-wide standings table.
func (client *Client) Global(ctx context.Context, leagueID int64) ([]Entry, error) {
	var out []Entry
	if err := client.http.Get(ctx, fmt.Sprintf("/leaderboard/global/%d", leagueID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Event returns the standings for a single event within a league.
func (client *Client) Event(ctx context.Context, leagueID, eventID int64) ([]Entry, error) {
	var out []Entry
	path := fmt.Sprintf("/leaderboard/event/%d/%d", leagueID, eventID)
	if err := client.http.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyHistory returns the user's per-event results in a league.
func (client *Client) MyHistory(ctx context.Context, leagueID int64) ([]HistoryItem, error) {
	var out []HistoryItem
	path := fmt.Sprintf("/leaderboard/my-history/%d", leagueID)
	if err := client.http.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

/*
Overview fetches the global table, the event table, and the user's own
position concurrently and joins the results.

Description: The three reads are independent; each degrades to its empty
default on failure and logs on its own. One slow or broken sub-fetch never
aborts the others, so the closures below always return nil.

Parameters:
  - ctx: context.Context
  - leagueID: the league whose standings are rendered
  - eventID: the current event; zero skips the event table

Returns:
  - Overview: whatever could be fetched, defaults elsewhere
*/
func (client *Client) Overview(ctx context.Context, leagueID, eventID int64) Overview {
	var overview Overview

	var group errgroup.Group

	group.Go(func() error {
		overview.Mine = client.MyPosition(ctx, leagueID)
		return nil
	})

	group.Go(func() error {
		global, err := client.Global(ctx, leagueID)
		if err != nil {
			client.log.Warn("leaderboard_global_failed",
				slog.Int64("league_id", leagueID),
				slog.Any("error", err),
			)
			return nil
		}
		overview.Global = global
		return nil
	})

	if eventID != 0 {
		group.Go(func() error {
			entries, err := client.Event(ctx, leagueID, eventID)
			if err != nil {
				client.log.Warn("leaderboard_event_failed",
					slog.Int64("league_id", leagueID),
					slog.Int64("event_id", eventID),
					slog.Any("error", err),
				)
				return nil
			}
			overview.Event = entries
			return nil
		})
	}

	// Closures never return errors; Wait only synchronizes.
	_ = group.Wait()

	return overview
}
