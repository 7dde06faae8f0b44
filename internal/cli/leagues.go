// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fantasyfightleague/fflcli/internal/core/leagues"
	"github.com/fantasyfightleague/fflcli/internal/nav"
)

func newLeaguesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leagues",
		Short: "Discover, join, and manage leagues",
	}

	cmd.AddCommand(
		newLeaguesListCmd(),
		newLeaguesMineCmd(),
		newLeaguesJoinCmd(),
		newLeaguesLeaveCmd(),
		newLeaguesCreateCmd(),
	)
	return cmd
}

func printLeagueTable(list []leagues.League) {
	fmt.Printf("%-6s  %-28s  %-8s  %-8s  %s\n", "ID", "NAME", "MEMBERS", "BUDGET", "VISIBILITY")
	for _, league := range list {
		visibility := "public"
		if league.Private {
			visibility = "private"
		}
		fmt.Printf("%-6d  %-28s  %-8d  %-8d  %s\n",
			league.ID, league.Name, league.MemberCount, league.Budget(), visibility)
	}
}

func newLeaguesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List joinable public leagues",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.leagues.Public(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("No public leagues right now.")
				return nil
			}
			printLeagueTable(list)
			return nil
		},
	}
}

func newLeaguesMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the leagues you belong to",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewLeagues, Query: url.Values{}}) {
				return nil
			}

			list, err := a.leagues.Mine(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("You are not in any league yet. Try `ffl leagues list`.")
				return nil
			}
			printLeagueTable(list)
			return nil
		},
	}
}

func newLeaguesJoinCmd() *cobra.Command {
	var invitationCode string

	cmd := &cobra.Command{
		Use:   "join [league-id]",
		Short: "Join a public league by id, or a private one by invitation code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewLeagues, Query: url.Values{}}) {
				return nil
			}

			if invitationCode != "" {
				league, err := a.leagues.JoinPrivate(ctx, invitationCode)
				if err != nil {
					return err
				}
				fmt.Printf("Joined %s.\n", league.Name)
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("a league id or --code is required")
			}
			leagueID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid league id %q", args[0])
			}

			if err := a.leagues.Join(ctx, leagueID); err != nil {
				return err
			}
			fmt.Println("Joined.")
			return nil
		},
	}

	cmd.Flags().StringVar(&invitationCode, "code", "", "Invitation code for a private league")
	return cmd
}

func newLeaguesLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <league-id>",
		Short: "Leave a league",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewLeagues, Query: url.Values{}}) {
				return nil
			}

			leagueID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid league id %q", args[0])
			}

			if err := a.leagues.Leave(ctx, leagueID); err != nil {
				return err
			}
			fmt.Println("Left the league.")
			return nil
		},
	}
}

func newLeaguesCreateCmd() *cobra.Command {
	var input leagues.CreatePrivateInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a private league",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewLeagues, Query: url.Values{}}) {
				return nil
			}

			var err error
			if input.Name == "" {
				if input.Name, err = promptRequired("League name: "); err != nil {
					return err
				}
			}

			league, err := a.leagues.CreatePrivate(ctx, input)
			if err != nil {
				return err
			}

			fmt.Printf("Created %s (id %d).\n", league.Name, league.ID)
			if league.InvitationCode != "" {
				fmt.Printf("Invitation code: %s\n", league.InvitationCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "League name")
	cmd.Flags().StringVar(&input.Description, "description", "", "League description")
	cmd.Flags().IntVar(&input.InitialBudget, "budget", 0, "Roster budget (backend default if omitted)")
	cmd.Flags().IntVar(&input.MaxFightersEvent, "max-fighters", 0, "Max fighters per event (backend default if omitted)")
	cmd.Flags().IntVar(&input.MinFightersEvent, "min-fighters", 0, "Min fighters per event (backend default if omitted)")
	return cmd
}
