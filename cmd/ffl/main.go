// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

// Command ffl is the Fantasy Fight League terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/fantasyfightleague/fflcli/internal/cli"
	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/internal/platform/ctxutil"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One correlation ID per invocation; every backend call shares it.
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())

	root := cli.NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		// AppError messages are already user-safe; print them bare.
		if ae := apperr.As(err); ae != nil {
			fmt.Fprintln(os.Stderr, ae.Message)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
