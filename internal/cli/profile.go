// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/fantasyfightleague/fflcli/internal/nav"
	"github.com/fantasyfightleague/fflcli/internal/users/account"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit your profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(),
		newProfileUpdateCmd(),
		newProfileChangePasswordCmd(),
		newProfileChangeEmailCmd(),
	)
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the full profile record",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewDashboard, Query: url.Values{}}) {
				return nil
			}

			profile, err := a.account.Profile(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Username:  %s\n", profile.Username)
			fmt.Printf("Email:     %s (verified: %t)\n", profile.Email, profile.EmailConfirmed)
			if profile.FirstName != "" || profile.LastName != "" {
				fmt.Printf("Name:      %s %s\n", profile.FirstName, profile.LastName)
			}
			if len(profile.Roles) > 0 {
				fmt.Printf("Roles:     %v\n", []string(profile.Roles))
			}
			return nil
		},
	}
}

func newProfileUpdateCmd() *cobra.Command {
	var update account.ProfileUpdate

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the editable profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewDashboard, Query: url.Values{}}) {
				return nil
			}

			profile, err := a.account.UpdateProfile(ctx, update)
			if err != nil {
				return err
			}
			fmt.Printf("Profile updated: %s %s\n", profile.FirstName, profile.LastName)
			return nil
		},
	}

	cmd.Flags().StringVar(&update.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&update.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&update.AvatarURL, "avatar-url", "", "Avatar image URL")
	return cmd
}

func newProfileChangePasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change-password",
		Short: "Rotate the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewDashboard, Query: url.Values{}}) {
				return nil
			}

			current, err := promptRequired("Current password: ")
			if err != nil {
				return err
			}
			next, err := promptRequired("New password: ")
			if err != nil {
				return err
			}

			if err := a.account.ChangePassword(ctx, current, next); err != nil {
				return err
			}
			fmt.Println("Password changed.")
			return nil
		},
	}
}

func newProfileChangeEmailCmd() *cobra.Command {
	var newEmail string

	cmd := &cobra.Command{
		Use:   "change-email",
		Short: "Point the account at a new email address",
		Long:  "Change the account email. The new address starts unverified and receives a confirmation link; picks stay locked until it is confirmed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewDashboard, Query: url.Values{}}) {
				return nil
			}

			var err error
			if newEmail == "" {
				if newEmail, err = promptRequired("New email: "); err != nil {
					return err
				}
			}
			password, err := promptRequired("Password: ")
			if err != nil {
				return err
			}

			if err := a.account.ChangeEmail(ctx, newEmail, password); err != nil {
				return err
			}
			fmt.Printf("Email changed to %s. Confirm it via the emailed link.\n", newEmail)
			return nil
		},
	}

	cmd.Flags().StringVar(&newEmail, "email", "", "New email address")
	return cmd
}
