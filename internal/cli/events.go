// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fantasyfightleague/fflcli/internal/core/events"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse the event calendar",
	}

	cmd.AddCommand(
		newEventsListCmd(),
		newEventsNextCmd(),
		newEventsFightersCmd(),
	)
	return cmd
}

func newEventsListCmd() *cobra.Command {
	var upcomingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				list []events.Event
				err  error
			)
			if upcomingOnly {
				list, err = a.events.Upcoming(ctx)
			} else {
				list, err = a.events.List(ctx)
			}
			if err != nil {
				return err
			}

			if len(list) == 0 {
				fmt.Println("No events found.")
				return nil
			}

			fmt.Printf("%-6s  %-30s  %-10s  %-16s  %s\n", "ID", "NAME", "STATUS", "DATE", "PICKS")
			for _, event := range list {
				fmt.Printf("%-6d  %-30s  %-10s  %-16s  %s\n",
					event.ID, event.Name, event.Status, formatEventDate(&event), picksWindow(&event))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&upcomingOnly, "upcoming", false, "Show only events that have not started")
	return cmd
}

func newEventsNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next upcoming event",
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := a.events.Next(cmd.Context())
			if err != nil {
				return err
			}
			if event == nil {
				fmt.Println("No upcoming event on the calendar.")
				return nil
			}

			fmt.Printf("%s (id %d)\n", event.Name, event.ID)
			fmt.Printf("Status: %s\n", event.Status)
			fmt.Printf("Date:   %s\n", formatEventDate(event))
			fmt.Printf("Picks:  %s\n", picksWindow(event))
			return nil
		},
	}
}

func newEventsFightersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fighters <event-id>",
		Short: "List the selectable fighters on an event card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}

			fighters, err := a.events.Fighters(cmd.Context(), eventID)
			if err != nil {
				return err
			}
			if len(fighters) == 0 {
				fmt.Println("No fighters on this card yet.")
				return nil
			}

			fmt.Printf("%-6s  %-25s  %-10s  %-14s  %s\n", "ID", "NAME", "RECORD", "WEIGHT", "PRICE")
			for _, fighter := range fighters {
				fmt.Printf("%-6d  %-25s  %-10s  %-14s  %d\n",
					fighter.ID, fighter.Name, fighter.Record, fighter.WeightClass, fighter.Price)
			}
			return nil
		},
	}
}

func formatEventDate(event *events.Event) string {
	if event.StartDate == nil {
		return "TBA"
	}
	return event.StartDate.Format("2006-01-02 15:04")
}

func picksWindow(event *events.Event) string {
	if event.PicksOpen(time.Now()) {
		return "open until " + event.PicksDeadline.Format("2006-01-02 15:04")
	}
	return "closed"
}
