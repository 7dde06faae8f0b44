// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

// Package events is the typed client for the backend's event and fighter
// catalog.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/fantasyfightleague/fflcli/internal/platform/httpclient"
)

// DefaultFighterPrice backfills fighters the pricing job has not visited
// yet, mirroring the backend's default.
const DefaultFighterPrice = 60000

// Event statuses as reported by the backend.
const (
	StatusUpcoming  = "UPCOMING"
	StatusLive      = "LIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Event is one combat-sports card.
type Event struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	PicksDeadline *time.Time `json:"picksDeadline"`
	Location      string     `json:"location"`
	Status        string     `json:"status"`
	Description   string     `json:"description"`
	ImageURL      string     `json:"imageUrl"`
}

// PicksOpen reports whether picks can still be submitted at the given
// instant. A missing deadline means the backend has not scheduled the
// event yet; treat it as closed.
func (e *Event) PicksOpen(now time.Time) bool {
	if e.PicksDeadline == nil {
		return false
	}
	return now.Before(*e.PicksDeadline)
}

// Fighter is one selectable athlete with their roster cost.
type Fighter struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Record      string `json:"record"`
	Nationality string `json:"nationality"`
	WeightClass string `json:"weightClass"`
	ImageURL    string `json:"imageUrl"`
	Price       int    `json:"price"`
	Active      bool   `json:"active"`
}

// Client calls the /events resource.
type Client struct {
	http *httpclient.Client
}

// NewClient constructs an events [Client].
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// List returns the full event catalog.
func (client *Client) List(ctx context.Context) ([]Event, error) {
	var out []Event
	if err := client.http.Get(ctx, "/events", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upcoming returns events that have not started yet.
func (client *Client) Upcoming(ctx context.Context) ([]Event, error) {
	var out []Event
	if err := client.http.Get(ctx, "/events/upcoming", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Next returns the closest upcoming event, or nil when the calendar is empty.
func (client *Client) Next(ctx context.Context) (*Event, error) {
	var out *Event
	if err := client.http.Get(ctx, "/events/next", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByID fetches one event.
func (client *Client) ByID(ctx context.Context, eventID int64) (*Event, error) {
	var out Event
	if err := client.http.Get(ctx, fmt.Sprintf("/events/%d", eventID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fighters returns the selectable fighters on an event's card. Unpriced
// fighters get [DefaultFighterPrice] so budget math never divides on zero
// cost.
func (client *Client) Fighters(ctx context.Context, eventID int64) ([]Fighter, error) {
	var out []Fighter
	if err := client.http.Get(ctx, fmt.Sprintf("/events/%d/fighters", eventID), &out); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Price <= 0 {
			out[i].Price = DefaultFighterPrice
		}
	}
	return out, nil
}
