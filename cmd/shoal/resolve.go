// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resolveLoad   bool
	resolveReload bool

	resolveCmd = &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Resolve command names against builtins and the search path",
		Long: `Resolve one or more command names.

Without flags this is a pure existence probe: each name is checked
against the builtin table and the search path without executing
anything. With --load, resolved script sources are executed in the
embedded shell. With --reload, cached resolutions older than the
staleness interval are re-validated against the filesystem.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolve,
	}
)

func init() {
	resolveCmd.Flags().BoolVar(&resolveLoad, "load", false, "execute resolved script sources")
	resolveCmd.Flags().BoolVar(&resolveReload, "reload", false, "re-validate cached resolutions (implies --load)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	mgr, loader, _, err := newManager(logger)
	if err != nil {
		return err
	}

	if resolveReload {
		resolveLoad = true
	}

	failed := 0
	for _, name := range args {
		var (
			outcome string
			ok      bool
		)
		if resolveLoad {
			switch {
			case loader.Load(cmd.Context(), name, resolveReload):
				outcome, ok = "loaded", true
			case mgr.CanLoad(name, nil):
				// Resolvable but nothing to (re)do: builtin, or already
				// current in the cache.
				outcome, ok = "up to date", true
			default:
				outcome, ok = "not found", false
			}
		} else {
			if mgr.CanLoad(name, nil) {
				outcome, ok = "resolvable", true
			} else {
				outcome, ok = "not found", false
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), formatOutcome(name, outcome, ok))
		if !ok {
			failed++
		}
	}

	if failed > 0 {
		return NewExitError(fmt.Errorf("%d of %d name(s) did not resolve", failed, len(args)), 1)
	}
	return nil
}

// formatOutcome renders one per-name result line.
func formatOutcome(name, outcome string, ok bool) string {
	marker := SuccessStyle.Render("✓")
	if !ok {
		marker = ErrorStyle.Render("✗")
	}
	return fmt.Sprintf("%s %s %s", marker, CmdStyle.Render(name), SubtitleStyle.Render(outcome))
}
