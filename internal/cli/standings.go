// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/fantasyfightleague/fflcli/internal/core/leaderboard"
	"github.com/fantasyfightleague/fflcli/internal/nav"
)

func newStandingsCmd() *cobra.Command {
	var leagueID, eventID int64
	var history bool

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Show league standings",
		Long:  "Show the league table, the current event's table, and your own position. Each section degrades independently when the backend is struggling.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewLeagues, Query: url.Values{}}) {
				return nil
			}

			if history {
				return printHistory(cmd, leagueID)
			}

			overview := a.leaderboard.Overview(ctx, leagueID, eventID)

			printMyPosition(overview.Mine)

			fmt.Println("\nLeague table:")
			printStandingsTable(overview.Global)

			if eventID != 0 {
				fmt.Println("\nEvent table:")
				printStandingsTable(overview.Event)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&leagueID, "league", 0, "League id")
	cmd.Flags().Int64Var(&eventID, "event", 0, "Event id (adds the per-event table)")
	cmd.Flags().BoolVar(&history, "history", false, "Show your per-event history instead")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}

func printMyPosition(position leaderboard.Position) {
	if position.Rank == nil {
		fmt.Println("You are not ranked yet in this league.")
		return
	}
	fmt.Printf("Your position: #%d of %d (%d points over %d events)\n",
		*position.Rank, position.TotalParticipants, position.TotalPoints, position.EventsParticipated)
}

func printStandingsTable(entries []leaderboard.Entry) {
	if len(entries) == 0 {
		fmt.Println("  (no standings available)")
		return
	}
	fmt.Printf("  %-4s  %-20s  %-8s  %s\n", "POS", "USERNAME", "POINTS", "EVENTS")
	for _, entry := range entries {
		fmt.Printf("  %-4d  %-20s  %-8d  %d\n",
			entry.Position, entry.Username, entry.TotalPoints, entry.EventsParticipated)
	}
}

func printHistory(cmd *cobra.Command, leagueID int64) error {
	items, err := a.leaderboard.MyHistory(cmd.Context(), leagueID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No event history in this league yet.")
		return nil
	}

	fmt.Printf("%-6s  %-30s  %-8s  %s\n", "ID", "EVENT", "POINTS", "POSITION")
	for _, item := range items {
		fmt.Printf("%-6d  %-30s  %-8d  #%d\n",
			item.EventID, item.EventName, item.Points, item.Position)
	}
	return nil
}
