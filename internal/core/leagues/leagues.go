// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

// Package leagues is the typed client for league discovery and membership.
package leagues

import (
	"context"
	"fmt"
	"strings"

	"github.com/fantasyfightleague/fflcli/internal/platform/httpclient"
	"github.com/fantasyfightleague/fflcli/internal/platform/validate"
)

// Default roster constraints applied by the backend when a league does not
// override them.
const (
	DefaultBudget      = 100000
	DefaultMaxFighters = 3
	DefaultMinFighters = 1
)

// League is one competition a user can join.
type League struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Private          bool   `json:"isPrivate"`
	InvitationCode   string `json:"invitationCode,omitempty"`
	InitialBudget    int    `json:"initialBudget"`
	MaxFightersEvent int    `json:"maxFightersEvent"`
	MinFightersEvent int    `json:"minFightersEvent"`
	MemberCount      int    `json:"memberCount"`
}

// Budget returns the league budget, falling back to the backend default.
func (l *League) Budget() int {
	if l.InitialBudget <= 0 {
		return DefaultBudget
	}
	return l.InitialBudget
}

// RosterBounds returns the inclusive [min, max] roster size.
func (l *League) RosterBounds() (int, int) {
	minSize, maxSize := l.MinFightersEvent, l.MaxFightersEvent
	if minSize <= 0 {
		minSize = DefaultMinFighters
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFighters
	}
	return minSize, maxSize
}

// CreatePrivateInput is the payload for creating a private league. Zero
// values for the roster constraints mean "use the backend defaults".
type CreatePrivateInput struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	InitialBudget    int    `json:"initialBudget,omitempty"`
	MaxFightersEvent int    `json:"maxFightersEvent,omitempty"`
	MinFightersEvent int    `json:"minFightersEvent,omitempty"`
}

// Validate checks the creation payload before the wire.
func (in CreatePrivateInput) Validate() error {
	v := &validate.Validator{}
	v.Required("name", in.Name).MaxLen("name", in.Name, 50)
	if in.InitialBudget != 0 {
		v.Range("initialBudget", in.InitialBudget, 10000, 1000000)
	}
	if in.MinFightersEvent != 0 || in.MaxFightersEvent != 0 {
		minSize, maxSize := in.MinFightersEvent, in.MaxFightersEvent
		if minSize == 0 {
			minSize = DefaultMinFighters
		}
		if maxSize == 0 {
			maxSize = DefaultMaxFighters
		}
		v.Custom("minFightersEvent", minSize > maxSize, "Minimum cannot exceed maximum")
		v.Range("maxFightersEvent", maxSize, 1, 10)
	}
	return v.Err()
}

// Client calls the /leagues resource.
type Client struct {
	http *httpclient.Client
}

// NewClient constructs a leagues [Client].
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// Public lists the joinable public leagues.
func (client *Client) Public(ctx context.Context) ([]League, error) {
	var out []League
	if err := client.http.Get(ctx, "/leagues/public", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Mine lists the leagues the signed-in user belongs to.
func (client *Client) Mine(ctx context.Context) ([]League, error) {
	var out []League
	if err := client.http.Get(ctx, "/leagues/my-leagues", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByID fetches one league, including its roster constraints.
func (client *Client) ByID(ctx context.Context, leagueID int64) (*League, error) {
	var out League
	if err := client.http.Get(ctx, fmt.Sprintf("/leagues/%d", leagueID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Join adds the signed-in user to a public league.
func (client *Client) Join(ctx context.Context, leagueID int64) error {
	return client.http.Post(ctx, fmt.Sprintf("/leagues/%d/join", leagueID), nil, nil)
}

// JoinPrivate redeems an invitation code. Codes are upper-cased on the
// backend, so normalize before sending.
func (client *Client) JoinPrivate(ctx context.Context, invitationCode string) (*League, error) {
	payload := map[string]string{
		"invitationCode": strings.ToUpper(strings.TrimSpace(invitationCode)),
	}

	var out League
	if err := client.http.Post(ctx, "/leagues/join-private", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePrivate creates a private league owned by the signed-in user and
// returns it with its generated invitation code.
func (client *Client) CreatePrivate(ctx context.Context, input CreatePrivateInput) (*League, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var out League
	if err := client.http.Post(ctx, "/leagues/private", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leave removes the signed-in user from a league.
func (client *Client) Leave(ctx context.Context, leagueID int64) error {
	return client.http.Delete(ctx, fmt.Sprintf("/leagues/%d/leave", leagueID), nil)
}
