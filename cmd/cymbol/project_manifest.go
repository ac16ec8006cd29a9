package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cymbol/internal/project"
)

// loadConfig returns the effective configuration for target: the
// --config file or the nearest cymbol.toml, with explicitly set flags on
// top.
func loadConfig(cmd *cobra.Command, target string) (project.Config, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg project.Config
	if configPath != "" {
		cfg, err = project.LoadConfig(configPath)
		if err != nil {
			return project.Config{}, err
		}
	} else {
		manifest, _, err := project.LoadManifest(target)
		if err != nil {
			return project.Config{}, err
		}
		cfg = manifest.Config
	}

	if err := applyFlagOverrides(cmd, &cfg); err != nil {
		return project.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return project.Config{}, err
	}
	return cfg, nil
}

// applyFlagOverrides copies every flag the user set into cfg. Flags a
// command does not define are skipped. --format is per command and is
// handled by the command itself.
func applyFlagOverrides(cmd *cobra.Command, cfg *project.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("max-diagnostics") {
		if cfg.Check.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return err
		}
	}
	if flags.Changed("color") {
		if cfg.Output.Color, err = flags.GetString("color"); err != nil {
			return err
		}
	}
	if flags.Lookup("warn-shadowing") != nil && flags.Changed("warn-shadowing") {
		if cfg.Check.WarnShadowing, err = flags.GetBool("warn-shadowing"); err != nil {
			return err
		}
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if cfg.Check.Jobs, err = flags.GetInt("jobs"); err != nil {
			return err
		}
	}
	if flags.Lookup("cache") != nil && flags.Changed("cache") {
		if cfg.Check.Cache, err = flags.GetBool("cache"); err != nil {
			return err
		}
	}
	return nil
}

// useColor resolves an auto|on|off color mode against f.
func useColor(mode string, f *os.File) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(f)
	}
}
