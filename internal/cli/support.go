// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fantasyfightleague/fflcli/internal/core/support"
)

func newSupportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "support",
		Short: "Contact support",
	}

	cmd.AddCommand(
		newSupportTicketCmd(),
		newSupportStatusCmd(),
		newSupportCategoriesCmd(),
	)
	return cmd
}

func newSupportTicketCmd() *cobra.Command {
	var input support.TicketInput

	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "File a support ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Prefer the signed-in account's address.
			if input.Email == "" {
				if current := a.manager.Current(); current != nil {
					input.Email = current.Email
				}
			}

			var err error
			if input.Email == "" {
				if input.Email, err = promptRequired("Email: "); err != nil {
					return err
				}
			}
			if input.Subject == "" {
				if input.Subject, err = promptRequired("Subject: "); err != nil {
					return err
				}
			}
			if input.Message == "" {
				if input.Message, err = promptRequired("Message: "); err != nil {
					return err
				}
			}

			if err := a.support.CreateTicket(ctx, input); err != nil {
				return err
			}
			fmt.Println("Ticket filed. Support will reply by email.")
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "Reply address (defaults to the signed-in account)")
	cmd.Flags().StringVar(&input.Category, "category", "", "Ticket category (see `ffl support categories`)")
	cmd.Flags().StringVar(&input.Subject, "subject", "", "Short summary")
	cmd.Flags().StringVar(&input.Message, "message", "", "Full description")
	return cmd
}

func newSupportStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the support system's availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			status := a.support.SystemStatus(ctx)

			if status.Available {
				fmt.Println("Support is available.")
			} else {
				fmt.Println("Support is currently unavailable.")
			}
			if status.Notice != "" {
				fmt.Println(status.Notice)
			}

			contact := a.support.Contact(ctx)
			if contact.Email != "" {
				fmt.Printf("Email:   %s\n", contact.Email)
			}
			if contact.Discord != "" {
				fmt.Printf("Discord: %s\n", contact.Discord)
			}
			if contact.Twitter != "" {
				fmt.Printf("Twitter: %s\n", contact.Twitter)
			}
			return nil
		},
	}
}

func newSupportCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the selectable ticket categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := a.support.Categories(cmd.Context())
			if len(categories) == 0 {
				fmt.Println("No categories available; file the ticket without one.")
				return nil
			}

			for key, label := range categories {
				fmt.Printf("%-20s  %s\n", key, label)
			}
			return nil
		},
	}
}
