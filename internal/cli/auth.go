// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fantasyfightleague/fflcli/internal/nav"
	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/internal/users/auth"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to Fantasy Fight League",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewLogin, Query: url.Values{}}) {
				return nil
			}

			var err error
			if username == "" {
				if username, err = promptRequired("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptRequired("Password: "); err != nil {
					return err
				}
			}

			established, err := a.manager.Login(ctx, auth.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Signed in as %s.\n", established.Username)
			if !established.EmailConfirmed {
				fmt.Println("Your email address is not verified yet; picks are locked until it is.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.manager.Logout(cmd.Context())
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var input auth.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long:  "Create a Fantasy Fight League account. A verification email is sent; confirm it before signing in.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewRegister, Query: url.Values{}}) {
				return nil
			}

			var err error
			if input.Username == "" {
				if input.Username, err = promptRequired("Username: "); err != nil {
					return err
				}
			}
			if input.Email == "" {
				if input.Email, err = promptRequired("Email: "); err != nil {
					return err
				}
			}
			if input.Password == "" {
				if input.Password, err = promptRequired("Password: "); err != nil {
					return err
				}
			}

			if err := a.manager.Register(ctx, input); err != nil {
				switch apperr.CodeOf(err) {
				case apperr.CodeUsernameTaken, apperr.CodeEmailTaken:
					fmt.Println(err.Error())
					return nil
				}
				return err
			}

			fmt.Println("Account created. Check your inbox and confirm your email before signing in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Username, "username", "", "Desired username")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "Last name")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			current := a.manager.Current()
			if current == nil {
				fmt.Println("Not signed in.")
				return nil
			}

			fmt.Printf("%s <%s>\n", current.Username, current.Email)
			if name := strings.TrimSpace(current.FirstName + " " + current.LastName); name != "" {
				fmt.Printf("Name:     %s\n", name)
			}
			fmt.Printf("Verified: %t\n", current.EmailConfirmed)
			if current.IsAdmin() {
				fmt.Println("Role:     administrator")
			}
			return nil
		},
	}
}

func newConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <token>",
		Short: "Confirm an email address with the emailed token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := url.Values{nav.QueryToken: []string{args[0]}}
			if !a.require(ctx, nav.Target{View: nav.ViewVerifyEmail, Query: query}) {
				return nil
			}

			if err := a.manager.ConfirmEmail(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Email confirmed. Picks are now open to you.")
			return nil
		},
	}
}

func newResendVerificationCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "resend-verification",
		Short: "Send a fresh email verification link",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Default to the signed-in account's address.
			if email == "" {
				if current := a.manager.Current(); current != nil {
					email = current.Email
				}
			}
			var err error
			if email == "" {
				if email, err = promptRequired("Email: "); err != nil {
					return err
				}
			}

			if err := a.manager.ResendVerification(ctx, email); err != nil {
				return err
			}
			fmt.Printf("Verification email sent to %s.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Address to verify (defaults to the signed-in account)")
	return cmd
}

func newForgotPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Start the password recovery flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.require(ctx, nav.Target{View: nav.ViewForgotPassword, Query: url.Values{}}) {
				return nil
			}

			var err error
			if email == "" {
				if email, err = promptRequired("Email: "); err != nil {
					return err
				}
			}

			if err := a.auth.ForgotPassword(ctx, email); err != nil {
				return err
			}
			fmt.Println("If that address has an account, a reset link is on its way.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email address")
	return cmd
}

func newResetPasswordCmd() *cobra.Command {
	var resetToken string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Complete password recovery with the emailed token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := url.Values{}
			if resetToken != "" {
				query.Set(nav.QueryToken, resetToken)
			}
			if !a.require(ctx, nav.Target{View: nav.ViewResetPassword, Query: query}) {
				return nil
			}

			if err := a.auth.ValidateResetToken(ctx, resetToken); err != nil {
				return err
			}

			newPassword, err := promptRequired("New password: ")
			if err != nil {
				return err
			}
			confirmPassword, err := promptRequired("Confirm password: ")
			if err != nil {
				return err
			}
			if newPassword != confirmPassword {
				return apperr.Validation("The passwords do not match")
			}

			if err := a.auth.ResetPassword(ctx, resetToken, newPassword, confirmPassword); err != nil {
				return err
			}
			fmt.Println("Password updated. Sign in with the new one.")
			return nil
		},
	}

	cmd.Flags().StringVar(&resetToken, "token", "", "Reset token from the recovery email")
	return cmd
}
