// SPDX-License-Identifier: MPL-2.0

package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed usage.md
var usageGuide string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Read the usage guide",
	Long:  "Render the bundled usage guide in the terminal.",
	Args:  cobra.NoArgs,
	RunE:  runDocs,
}

func runDocs(cmd *cobra.Command, _ []string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(usageGuide)
	if err != nil {
		return fmt.Errorf("render usage guide: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
