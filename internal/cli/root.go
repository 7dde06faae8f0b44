// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package cli is the terminal front end over the FFL client SDK.

Each command is a thin view: it consults the access guard, calls the typed
clients, and renders. All domain rules live below this package.
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fantasyfightleague/fflcli/internal/core/events"
	"github.com/fantasyfightleague/fflcli/internal/core/leaderboard"
	"github.com/fantasyfightleague/fflcli/internal/core/leagues"
	"github.com/fantasyfightleague/fflcli/internal/core/picks"
	"github.com/fantasyfightleague/fflcli/internal/core/support"
	"github.com/fantasyfightleague/fflcli/internal/nav"
	"github.com/fantasyfightleague/fflcli/internal/platform/config"
	"github.com/fantasyfightleague/fflcli/internal/platform/credential"
	"github.com/fantasyfightleague/fflcli/internal/platform/httpclient"
	"github.com/fantasyfightleague/fflcli/internal/platform/logging"
	"github.com/fantasyfightleague/fflcli/internal/users/account"
	"github.com/fantasyfightleague/fflcli/internal/users/auth"
	"github.com/fantasyfightleague/fflcli/internal/users/session"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
)

// app bundles the wired SDK for command bodies. Built once in the root
// command's PersistentPreRunE.
type app struct {
	cfg *config.Config
	log *slog.Logger

	manager *session.Manager
	guard   *nav.Guard

	auth        *auth.Client
	account     *account.Client
	events      *events.Client
	leagues     *leagues.Client
	picks       *picks.Client
	leaderboard *leaderboard.Client
	support     *support.Client
}

var a *app

// NewRootCmd creates the root cobra command for the ffl CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ffl",
		Short: "ffl — Fantasy Fight League from the terminal",
		Long:  "ffl signs in to Fantasy Fight League, browses events and leagues, and manages fight picks.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			a = built
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "", "FFL API base URL (or FFL_API_URL env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newWhoamiCmd(),
		newConfirmCmd(),
		newResendVerificationCmd(),
		newForgotPasswordCmd(),
		newResetPasswordCmd(),
		newEventsCmd(),
		newLeaguesCmd(),
		newPicksCmd(),
		newStandingsCmd(),
		newSupportCmd(),
		newProfileCmd(),
	)

	return root
}

/*
buildApp wires config, logger, credential store, HTTP client, domain clients
and the session manager, then restores the session.

Description: Restoration runs here, before any command body, so guarded
commands always see settled session state. The 401 hook and the manager
reference each other; the hook closes over a variable assigned after the
client exists.
*/
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Flags override the environment.
	if flagServer != "" {
		cfg.APIBaseURL = flagServer
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if flagDebug || cfg.Debug {
		cfg.LogLevel = "debug"
	}

	log := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	store, err := buildCredentialStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var manager *session.Manager
	client := httpclient.New(httpclient.Options{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.RequestTimeout,
		Credentials: store,
		Logger:      log,
		OnUnauthorized: func(attemptedPath string) {
			if manager != nil {
				manager.HandleUnauthorized(attemptedPath)
			}
		},
	})

	authClient := auth.NewClient(client)
	accountClient := account.NewClient(client)

	navigator := terminalNavigator{}
	manager = session.NewManager(
		authClient,
		accountClient,
		store,
		nav.LoginRedirector{Navigator: navigator},
		log,
	)

	manager.Initialize(ctx)
	if cfg.UseSharedStore() {
		manager.WatchCredential(ctx)
	}

	return &app{
		cfg:         cfg,
		log:         log,
		manager:     manager,
		guard:       nav.NewGuard(manager),
		auth:        authClient,
		account:     accountClient,
		events:      events.NewClient(client),
		leagues:     leagues.NewClient(client),
		picks:       picks.NewClient(client),
		leaderboard: leaderboard.NewClient(client, log),
		support:     support.NewClient(client, log),
	}, nil
}

// buildCredentialStore picks the file backend, or the shared Redis backend
// when FFL_REDIS_URL is set.
func buildCredentialStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (credential.Store, error) {
	if !cfg.UseSharedStore() {
		return credential.NewFileStore(cfg.CredentialsPath), nil
	}

	redisClient, err := credential.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return credential.NewRedisStore(redisClient, cfg.Profile, log), nil
}

// require consults the guard for a view and prints the redirect outcome
// when denied. It reports whether the command body may run.
func (a *app) require(ctx context.Context, target nav.Target) bool {
	decision := a.guard.Decide(ctx, target)
	if decision.Allow {
		return true
	}

	switch decision.Redirect {
	case nav.ViewLogin:
		fmt.Println("You are not signed in. Run `ffl login` first.")
	case nav.ViewEmailUnverified:
		fmt.Println("Your email address is not verified. Run `ffl resend-verification` and follow the link.")
	case nav.ViewDashboard:
		fmt.Println("You are already signed in. Run `ffl logout` first.")
	case nav.ViewForgotPassword:
		fmt.Println("A reset token is required. Run `ffl forgot-password` to request one.")
	default:
		fmt.Println("That action is not available right now.")
	}
	return false
}
