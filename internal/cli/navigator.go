// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package cli

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/fantasyfightleague/fflcli/internal/nav"
)

// terminalNavigator is the CLI's rendering of a route change. A terminal
// cannot switch views, so a forced navigation becomes a printed instruction.
type terminalNavigator struct{}

func (terminalNavigator) Go(view string, query url.Values) {
	switch view {
	case nav.ViewLogin:
		if redirect := query.Get(nav.QueryRedirect); redirect != "" {
			fmt.Fprintf(os.Stderr, "Session ended while accessing %s. Run `ffl login` to continue.\n", redirect)
			return
		}
		fmt.Fprintln(os.Stderr, "Session ended. Run `ffl login` to continue.")
	default:
		fmt.Fprintf(os.Stderr, "Continue at: %s\n", view)
	}
}

// prompt reads one line from stdin after printing a label.
func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptRequired re-asks until the value is non-empty.
func promptRequired(label string) (string, error) {
	for {
		value, err := prompt(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		fmt.Println("A value is required.")
	}
}
