// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package picks handles fighter rosters for one (league, event) pair.

Two layers live here:

  - Client: the typed wrapper over the /picks endpoints.
  - Roster: the in-memory builder that enforces the budget and size
    invariants before anything reaches the network. The backend re-validates
    everything; the client-side rules exist so an obviously-invalid roster
    is rejected with a precise reason instead of a round trip.
*/
package picks

import (
	"context"
	"fmt"
	"strings"

	"github.com/fantasyfightleague/fflcli/internal/core/events"
	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/internal/platform/httpclient"
)

// Pick is a saved roster as the backend returns it.
type Pick struct {
	ID               int64            `json:"id"`
	LeagueID         int64            `json:"leagueId"`
	EventID          int64            `json:"eventId"`
	SelectedFighters []events.Fighter `json:"selectedFighters"`
	TotalCost        int              `json:"totalCost"`
	Points           int              `json:"points"`
}

// SaveInput is the submission payload: fighter identifiers only; the
// backend resolves costs itself.
type SaveInput struct {
	LeagueID   int64   `json:"leagueId"`
	EventID    int64   `json:"eventId"`
	FighterIDs []int64 `json:"fighterIds"`
}

// Client calls the /picks resource.
type Client struct {
	http *httpclient.Client
}

// NewClient constructs a picks [Client].
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

/*
Save creates or replaces the pick for the input's (league, event) pair.

Description: The backend signals domain rejections through its message
envelope; those are promoted here into the typed kinds the UI branches on.

Returns:
  - *Pick: the saved roster
  - error: apperr.CodeEmailNotVerified, apperr.CodePicksClosed,
    apperr.CodeBudgetExceeded, or the underlying failure
*/
func (client *Client) Save(ctx context.Context, input SaveInput) (*Pick, error) {
	var out Pick
	err := client.http.Post(ctx, "/picks", input, &out)
	if err == nil {
		return &out, nil
	}
	return nil, classifySaveError(err)
}

// classifySaveError promotes the backend's pick-rejection messages into the
// typed taxonomy. Unknown failures pass through unchanged.
func classifySaveError(err error) error {
	ae := apperr.As(err)
	if ae == nil {
		return err
	}

	msg := strings.ToLower(ae.Message)
	switch {
	case strings.Contains(msg, "email_not_verified") || strings.Contains(msg, "verify your email"):
		return apperr.EmailNotVerified()
	case strings.Contains(msg, "closed") || strings.Contains(msg, "cerrado"):
		return apperr.PicksClosed()
	case strings.Contains(msg, "budget") || strings.Contains(msg, "presupuesto"):
		return apperr.BudgetExceeded()
	default:
		return err
	}
}

// MyPick fetches the saved pick for a (league, event) pair. Absence is not
// an error: the first visit to a picking view has no prior pick.
func (client *Client) MyPick(ctx context.Context, leagueID, eventID int64) (*Pick, error) {
	path := fmt.Sprintf("/picks/my-pick?leagueId=%d&eventId=%d", leagueID, eventID)

	var out Pick
	if err := client.http.Get(ctx, path, &out); err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if out.ID == 0 && len(out.SelectedFighters) == 0 {
		return nil, nil
	}
	return &out, nil
}

// MyPicks lists every pick the user has made in a league.
func (client *Client) MyPicks(ctx context.Context, leagueID int64) ([]Pick, error) {
	var out []Pick
	if err := client.http.Get(ctx, fmt.Sprintf("/picks/my-picks/%d", leagueID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a saved pick.
func (client *Client) Delete(ctx context.Context, pickID int64) error {
	return client.http.Delete(ctx, fmt.Sprintf("/picks/%d", pickID), nil)
}
