package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cymbol/internal/diag"
	"cymbol/internal/diagfmt"
	"cymbol/internal/driver"
	"cymbol/internal/fix"
	"cymbol/internal/observ"
	"cymbol/internal/source"
	"cymbol/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.cym|directory|-]",
	Short: "Check a Cymbol source file or directory for symbol errors",
	Long:  `Check lexes, parses and resolves every name in a Cymbol source file or in all *.cym files within a directory. Without an argument, or with "-", the source is read from standard input`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("warn-shadowing", false, "warn when a declaration hides an outer one")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("cache", false, "reuse results from the persistent disk cache")
	checkCmd.Flags().Bool("emit-scopes", false, "emit the scope tree after successful analysis")
	checkCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("fix", false, "apply fix suggestions to the source files")
}

type checkFlags struct {
	format     string
	withNotes  bool
	suggest    bool
	emitScopes bool
	fullPath   bool
	fix        bool
	timings    bool
	ui         progressMode
}

func readCheckFlags(cmd *cobra.Command, configFormat string) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	f.format = configFormat
	if cmd.Flags().Changed("format") {
		if f.format, err = cmd.Flags().GetString("format"); err != nil {
			return f, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	f.format = strings.ToLower(f.format)
	switch f.format {
	case "pretty", "short", "json", "sarif":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.emitScopes, err = cmd.Flags().GetBool("emit-scopes"); err != nil {
		return f, fmt.Errorf("failed to get emit-scopes flag: %w", err)
	}
	if f.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if f.fix, err = cmd.Flags().GetBool("fix"); err != nil {
		return f, fmt.Errorf("failed to get fix flag: %w", err)
	}
	if f.timings, err = cmd.Flags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = parseProgressMode(uiValue); err != nil {
		return f, err
	}
	return f, nil
}

func (f checkFlags) pathMode() diagfmt.PathMode {
	if f.fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}

func (f checkFlags) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         f.pathMode(),
		IncludeNotes:     f.withNotes,
		IncludeFixes:     f.suggest,
		IncludePreviews:  f.suggest,
	}
}

// runCheck executes the "check" command for a file or a directory. It
// exits with status 1 when any diagnostic is an error.
func runCheck(cmd *cobra.Command, args []string) error {
	// Ensure trace is dumped on panic
	defer dumpTraceOnPanic(cmd.Context())

	target, stdin := inputTarget(args)
	cfg, err := loadConfig(cmd, configDir(target, stdin))
	if err != nil {
		return err
	}
	flags, err := readCheckFlags(cmd, cfg.Output.Format)
	if err != nil {
		return err
	}

	isDir := false
	if !stdin {
		st, statErr := os.Stat(target)
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}
		isDir = st.IsDir()
	}

	opts := driver.CheckOptions{
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		WarnShadowing:  cfg.Check.WarnShadowing,
		EnableTimings:  flags.timings,
		NeedSemantics:  flags.emitScopes,
	}
	if cfg.Check.Cache {
		cache, cacheErr := driver.OpenDiskCache("cymbol")
		if cacheErr != nil {
			fmt.Fprintf(os.Stderr, "cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}
	color := useColor(cfg.Output.Color, os.Stdout)

	var hasErrors bool
	if isDir {
		hasErrors, err = checkDirectory(cmd, target, opts, cfg.Check.Jobs, flags, color)
	} else {
		hasErrors, err = checkFile(cmd, target, stdin, opts, flags, color)
	}
	if err != nil {
		return err
	}
	if hasErrors {
		runCleanups()
		os.Exit(1)
	}
	return nil
}

func checkFile(cmd *cobra.Command, path string, stdin bool, opts driver.CheckOptions, flags checkFlags, color bool) (bool, error) {
	result, err := checkInput(cmd.Context(), path, stdin, cmd.InOrStdin(), opts)
	if err != nil {
		return false, fmt.Errorf("check failed: %w", err)
	}
	hasErrors := result.Bag.HasErrors()
	machine := flags.format == "json" || flags.format == "sarif"
	if flags.timings && machine {
		driver.AttachTimings(result.Bag, "file", result.File.Path, result.Timing)
	}

	out := os.Stdout
	switch flags.format {
	case "pretty":
		diagfmt.Pretty(out, result.Bag, result.FileSet, prettyOpts(flags, color))
	case "short":
		diagfmt.Short(out, result.Bag, result.FileSet, flags.withNotes, flags.pathMode())
	case "json":
		jsonOpts := flags.jsonOpts()
		var semantics *diagfmt.SemanticsInput
		if result.Sema != nil {
			jsonOpts.IncludeSemantics = true
			semantics = &diagfmt.SemanticsInput{Builder: result.Builder, FileID: result.FileID, Result: result.Sema}
		}
		if err := diagfmt.JSON(out, result.Bag, result.FileSet, jsonOpts, semantics); err != nil {
			return false, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		if err := diagfmt.Sarif(out, result.Bag, result.FileSet, sarifMeta()); err != nil {
			return false, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if !machine {
		if flags.emitScopes && result.Sema != nil {
			fmt.Fprintln(out, "\n== SCOPES ==")
			if err := diagfmt.FormatScopesPretty(out, result.Sema, result.FileSet); err != nil {
				return false, err
			}
		}
		if flags.timings {
			printTimings(os.Stderr, result.Timing)
		}
	}
	if flags.fix {
		if err := applyFixes(os.Stderr, result.FileSet, result.Bag.Items()); err != nil {
			return hasErrors, err
		}
	}
	return hasErrors, nil
}

func checkDirectory(cmd *cobra.Command, dir string, opts driver.CheckOptions, jobs int, flags checkFlags, color bool) (bool, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return false, fmt.Errorf("failed to list files: %w", err)
	}

	var (
		fs      *source.FileSet
		results []driver.CheckDirResult
		report  *observ.Report
	)
	if flags.ui.showProgress(flags.format, len(files), os.Stdout) {
		fs, results, report, err = runCheckDirWithUI(cmd.Context(), "checking "+dir, files, dir, opts, jobs)
	} else {
		fs, results, report, err = driver.CheckDir(cmd.Context(), dir, opts, jobs)
	}
	if err != nil {
		return false, fmt.Errorf("check failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "no %s files in %s\n", driver.SourceExt, dir)
		return false, nil
	}

	hasErrors := false
	for _, r := range results {
		if r.Bag.HasErrors() {
			hasErrors = true
			break
		}
	}

	machine := flags.format == "json" || flags.format == "sarif"
	if flags.timings && machine {
		// отчёт каталога прикрепляется к первому файлу
		driver.AttachTimings(results[0].Bag, "dir", dir, report)
	}

	out := os.Stdout
	switch flags.format {
	case "short":
		for _, r := range results {
			diagfmt.Short(out, r.Bag, fs, flags.withNotes, flags.pathMode())
		}
	case "pretty":
		popts := prettyOpts(flags, color)
		for idx, r := range results {
			if idx > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", displayPath(fs, r, flags.pathMode()))
			diagfmt.Pretty(out, r.Bag, fs, popts)
			if flags.emitScopes && r.Result != nil && r.Result.Sema != nil {
				if err := diagfmt.FormatScopesPretty(out, r.Result.Sema, fs); err != nil {
					return false, err
				}
			}
		}
	case "json":
		if err := writeDirJSON(out, fs, results, flags); err != nil {
			return false, err
		}
	case "sarif":
		merged := diag.NewBag(0)
		for _, r := range results {
			merged.Merge(r.Bag)
		}
		if err := diagfmt.Sarif(out, merged, fs, sarifMeta()); err != nil {
			return false, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}
	if flags.timings && !machine {
		printTimings(os.Stderr, report)
	}
	if flags.fix {
		var all []diag.Diagnostic
		for _, r := range results {
			all = append(all, r.Bag.Items()...)
		}
		if err := applyFixes(os.Stderr, fs, all); err != nil {
			return hasErrors, err
		}
	}
	return hasErrors, nil
}

// applyFixes writes the fix suggestions of diags back to disk and
// reports what changed.
func applyFixes(w io.Writer, fs *source.FileSet, diags []diag.Diagnostic) error {
	res, err := fix.Apply(fs, diags, fix.Options{Write: true})
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(w, "fix: no applicable fixes")
		return nil
	}
	if err != nil {
		return fmt.Errorf("fix failed: %w", err)
	}
	for _, ch := range res.Files {
		fmt.Fprintf(w, "fix: %s: %d edit(s)\n", ch.Path, ch.EditCount)
	}
	for _, sk := range res.Skipped {
		fmt.Fprintf(w, "fix: skipped %q: %s\n", sk.Title, sk.Reason)
	}
	return nil
}

// writeDirJSON encodes one DiagnosticsOutput per file, keyed by path.
func writeDirJSON(w io.Writer, fs *source.FileSet, results []driver.CheckDirResult, flags checkFlags) error {
	output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
	for _, r := range results {
		opts := flags.jsonOpts()
		var semantics *diagfmt.SemanticsInput
		if r.Result != nil && r.Result.Sema != nil {
			opts.IncludeSemantics = true
			semantics = &diagfmt.SemanticsInput{Builder: r.Result.Builder, FileID: r.Result.FileID, Result: r.Result.Sema}
		}
		data, err := diagfmt.BuildDiagnosticsOutput(r.Bag, fs, opts, semantics)
		if err != nil {
			return fmt.Errorf("failed to build diagnostics output: %w", err)
		}
		output[displayPath(fs, r, flags.pathMode())] = data
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode diagnostics output: %w", err)
	}
	return nil
}

func displayPath(fs *source.FileSet, r driver.CheckDirResult, mode diagfmt.PathMode) string {
	if fs == nil || int(r.FileID) >= fs.Len() {
		return r.Path
	}
	return fs.Get(r.FileID).FormatPath(mode.String(), fs.BaseDir())
}

func prettyOpts(flags checkFlags, color bool) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     color,
		PathMode:  flags.pathMode(),
		ShowNotes: flags.withNotes,
		ShowFixes: flags.suggest,
	}
}

func sarifMeta() diagfmt.SarifRunMeta {
	return diagfmt.SarifRunMeta{
		ToolName:       "cymbol",
		ToolVersion:    version.Version,
		InvocationArgs: os.Args[1:],
	}
}
