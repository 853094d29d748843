// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging defaults with the
config file, and the path of the config file that was read (if any).`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Effective configuration"))
	if path != "" {
		fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("file:"), path)
	} else {
		fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("file:"), "(none, defaults only)")
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %s %s\n", SubtitleStyle.Render("search_variable:"), CmdStyle.Render(cfg.SearchVariable))
	fmt.Fprintf(out, "  %s %s\n", SubtitleStyle.Render("cache_capacity:"), CmdStyle.Render(fmt.Sprintf("%d", cfg.CacheCapacity)))
	fmt.Fprintf(out, "  %s %s\n", SubtitleStyle.Render("staleness_seconds:"), CmdStyle.Render(fmt.Sprintf("%d", cfg.StalenessSeconds)))
	fmt.Fprintf(out, "  %s %s\n", SubtitleStyle.Render("file_suffix:"), CmdStyle.Render(cfg.FileSuffix))
	fmt.Fprintf(out, "  %s %s\n", SubtitleStyle.Render("verbose:"), CmdStyle.Render(fmt.Sprintf("%t", cfg.Verbose)))
	return nil
}
