// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fantasyfightleague/fflcli/internal/core/events"
	"github.com/fantasyfightleague/fflcli/internal/core/picks"
	"github.com/fantasyfightleague/fflcli/internal/nav"
	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
)

func newPicksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picks",
		Short: "Show and submit fight picks",
	}

	cmd.AddCommand(
		newPicksShowCmd(),
		newPicksSetCmd(),
		newPicksClearCmd(),
	)
	return cmd
}

func newPicksShowCmd() *cobra.Command {
	var leagueID, eventID int64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your pick for a league and event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewPicks, Query: url.Values{}}) {
				return nil
			}

			pick, err := a.picks.MyPick(ctx, leagueID, eventID)
			if err != nil {
				return err
			}
			if pick == nil {
				fmt.Println("No pick saved for this event yet.")
				return nil
			}

			fmt.Printf("Pick %d — total cost %d, points %d\n", pick.ID, pick.TotalCost, pick.Points)
			for _, fighter := range pick.SelectedFighters {
				fmt.Printf("  %-6d %-25s %d\n", fighter.ID, fighter.Name, fighter.Price)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&leagueID, "league", 0, "League id")
	cmd.Flags().Int64Var(&eventID, "event", 0, "Event id")
	_ = cmd.MarkFlagRequired("league")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

/*
newPicksSetCmd builds and submits a roster in one shot.

The roster builder enforces the budget and size rules fighter by fighter, so
a bad selection is rejected with the exact offending fighter named instead
of a blanket server error.
*/
func newPicksSetCmd() *cobra.Command {
	var leagueID, eventID int64
	var fighterIDs []int64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Select fighters and save the pick",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewPicks, Query: url.Values{}}) {
				return nil
			}

			roster, available, err := buildRoster(ctx, leagueID, eventID)
			if err != nil {
				return err
			}

			byID := make(map[int64]events.Fighter, len(available))
			for _, fighter := range available {
				byID[fighter.ID] = fighter
			}

			for _, id := range fighterIDs {
				fighter, found := byID[id]
				if !found {
					return fmt.Errorf("fighter %d is not on this event's card", id)
				}
				if err := roster.Add(fighter); err != nil {
					return fmt.Errorf("%s: %w", fighter.Name, err)
				}
			}

			saved, err := roster.Save(ctx)
			if err != nil {
				switch apperr.CodeOf(err) {
				case apperr.CodeEmailNotVerified, apperr.CodePicksClosed, apperr.CodeBudgetExceeded:
					fmt.Println(err.Error())
					return nil
				}
				return err
			}

			names := make([]string, len(saved.SelectedFighters))
			for i, fighter := range saved.SelectedFighters {
				names[i] = fighter.Name
			}
			fmt.Printf("Pick saved: %s (spent %d, %d left)\n",
				strings.Join(names, ", "), roster.Spent(), roster.Remaining())
			return nil
		},
	}

	cmd.Flags().Int64Var(&leagueID, "league", 0, "League id")
	cmd.Flags().Int64Var(&eventID, "event", 0, "Event id")
	cmd.Flags().Int64SliceVar(&fighterIDs, "fighters", nil, "Fighter ids, comma separated")
	_ = cmd.MarkFlagRequired("league")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("fighters")
	return cmd
}

func newPicksClearCmd() *cobra.Command {
	var leagueID, eventID int64

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete your pick for a league and event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewPicks, Query: url.Values{}}) {
				return nil
			}

			pick, err := a.picks.MyPick(ctx, leagueID, eventID)
			if err != nil {
				return err
			}
			if pick == nil {
				fmt.Println("Nothing to clear.")
				return nil
			}

			if err := a.picks.Delete(ctx, pick.ID); err != nil {
				return err
			}
			fmt.Println("Pick deleted.")
			return nil
		},
	}

	cmd.Flags().Int64Var(&leagueID, "league", 0, "League id")
	cmd.Flags().Int64Var(&eventID, "event", 0, "Event id")
	_ = cmd.MarkFlagRequired("league")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

// buildRoster loads the league's constraints and the event card, then
// hydrates the roster from any previously saved pick.
func buildRoster(ctx context.Context, leagueID, eventID int64) (*picks.Roster, []events.Fighter, error) {
	league, err := a.leagues.ByID(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}

	available, err := a.events.Fighters(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	minSize, maxSize := league.RosterBounds()
	roster := picks.NewRoster(leagueID, eventID, league.Budget(), minSize, maxSize, a.picks)

	saved, err := a.picks.MyPick(ctx, leagueID, eventID)
	if err != nil {
		return nil, nil, err
	}
	roster.Hydrate(saved, available)

	// A fresh `set` replaces the old pick wholesale.
	for _, fighter := range roster.Selected() {
		roster.Remove(fighter.ID)
	}

	return roster, available, nil
}
