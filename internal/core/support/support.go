// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

// Package support is the typed client for the support-ticket endpoints.
//
// Everything except ticket creation is best-effort: the support views
// render with defaults when the metadata reads fail.
package support

import (
	"context"
	"log/slog"

	"github.com/fantasyfightleague/fflcli/internal/platform/httpclient"
)

// TicketInput is a new support request.
type TicketInput struct {
	Email    string `json:"email"`
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// Status describes the support system's availability.
type Status struct {
	Available bool   `json:"available"`
	Notice    string `json:"notice,omitempty"`
}

// ContactInfo is the fallback contact channel set.
type ContactInfo struct {
	Email   string `json:"email"`
	Discord string `json:"discord,omitempty"`
	Twitter string `json:"twitter,omitempty"`
}

// Client calls the /support resource.
type Client struct {
	http *httpclient.Client
	log  *slog.Logger
}

// NewClient constructs a support [Client].
func NewClient(http *httpclient.Client, log *slog.Logger) *Client {
	return &Client{http: http, log: log}
}

// CreateTicket files a support request. This one is not best-effort: the
// user must know whether their ticket was received.
func (client *Client) CreateTicket(ctx context.Context, input TicketInput) error {
	return client.http.Post(ctx, "/support/ticket", input, nil)
}

// Categories returns the selectable ticket categories, keyed by identifier.
// Best-effort: failure degrades to an empty map.
func (client *Client) Categories(ctx context.Context) map[string]string {
	out := map[string]string{}
	if err := client.http.Get(ctx, "/support/categories", &out); err != nil {
		client.log.Warn("support_categories_failed", slog.Any("error", err))
		return map[string]string{}
	}
	return out
}

// SystemStatus returns the support system's availability. Best-effort:
// failure degrades to "available".
func (client *Client) SystemStatus(ctx context.Context) Status {
	out := Status{Available: true}
	if err := client.http.Get(ctx, "/support/status", &out); err != nil {
		client.log.Warn("support_status_failed", slog.Any("error", err))
		return Status{Available: true}
	}
	return out
}

// Contact returns the fallback contact channels. Best-effort: failure
// degrades to an empty value.
func (client *Client) Contact(ctx context.Context) ContactInfo {
	var out ContactInfo
	if err := client.http.Get(ctx, "/support/contact-info", &out); err != nil {
		client.log.Warn("support_contact_failed", slog.Any("error", err))
		return ContactInfo{}
	}
	return out
}
