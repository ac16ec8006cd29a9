package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cymbol/internal/diagfmt"
	"cymbol/internal/driver"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] [file.cym|-]",
	Short: "Print the scope tree with every declared symbol",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSymbols,
}

func init() {
	symbolsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	symbolsCmd.Flags().Bool("warn-shadowing", false, "warn when a declaration hides an outer one")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	result, color, err := analyzeForDump(cmd, args)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		if err := diagfmt.FormatScopesPretty(os.Stdout, result.Sema, result.FileSet); err != nil {
			return err
		}
	case "json":
		in := &diagfmt.SemanticsInput{Builder: result.Builder, FileID: result.FileID, Result: result.Sema}
		if err := diagfmt.FormatScopesJSON(os.Stdout, in); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	reportToStderr(result, color)
	return nil
}

// analyzeForDump checks the argument (or stdin) and requires semantic
// results. Syntax errors are printed and end the process with status 1.
func analyzeForDump(cmd *cobra.Command, args []string) (*driver.CheckResult, bool, error) {
	target, stdin := inputTarget(args)
	cfg, err := loadConfig(cmd, configDir(target, stdin))
	if err != nil {
		return nil, false, err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return nil, false, fmt.Errorf("failed to get timings flag: %w", err)
	}
	result, err := checkInput(cmd.Context(), target, stdin, cmd.InOrStdin(), driver.CheckOptions{
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		WarnShadowing:  cfg.Check.WarnShadowing,
		EnableTimings:  timings,
		NeedSemantics:  true,
	})
	if err != nil {
		return nil, false, fmt.Errorf("check failed: %w", err)
	}
	color := useColor(cfg.Output.Color, os.Stderr)
	if !reportDumpInput(os.Stderr, result, timings, color) {
		runCleanups()
		os.Exit(1)
	}
	return result, color, nil
}

// reportDumpInput prints timings, and the diagnostics when the input has
// syntax errors. It reports whether a dump can follow.
func reportDumpInput(w io.Writer, result *driver.CheckResult, timings, color bool) bool {
	if timings {
		printTimings(w, result.Timing)
	}
	if result.Sema != nil {
		return true
	}
	reportTo(w, result, color)
	return false
}

func reportToStderr(result *driver.CheckResult, color bool) {
	reportTo(os.Stderr, result, color)
}

func reportTo(w io.Writer, result *driver.CheckResult, color bool) {
	if result.Bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(w, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: color})
}
