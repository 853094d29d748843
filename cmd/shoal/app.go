// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/shoal-dev/shoal/internal/autoload"
	"github.com/shoal-dev/shoal/internal/builtins"
	"github.com/shoal-dev/shoal/internal/config"
	"github.com/shoal-dev/shoal/internal/subshell"
)

// loadConfig reads the effective configuration, honoring the --config flag
// and folding --verbose into it.
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return nil, "", err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, path, nil
}

// newManager wires the autoload manager from the effective configuration:
// the embedded builtin table, the real filesystem prober, and the embedded
// shell as the subshell runner.
func newManager(logger *log.Logger) (*autoload.Manager, *autoload.Loader, *config.Config, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	table, err := builtins.Default()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load builtin scripts: %w", err)
	}

	mgr, loader, err := autoload.New(autoload.Options{
		SearchVariable:    cfg.SearchVariable,
		Builtins:          table,
		Capacity:          cfg.CacheCapacity,
		StalenessInterval: cfg.StalenessInterval(),
		FileSuffix:        cfg.FileSuffix,
		Runner:            subshell.NewRunner(),
		Logger:            logger,
		OnCommandRemoved: func(name string) {
			logger.Debug("stale definition removed", "command", name)
		},
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return mgr, loader, cfg, nil
}
