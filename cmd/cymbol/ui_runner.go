package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cymbol/internal/driver"
	"cymbol/internal/observ"
	"cymbol/internal/source"
	"cymbol/internal/ui"
)

// progressMode is the value of check --ui.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

func parseProgressMode(value string) (progressMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressOn, nil
	case "off":
		return progressOff, nil
	}
	return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// showProgress decides whether a directory check draws the progress view.
// It only ever replaces pretty output; auto also wants a terminal and more
// than one file, a single file finishes before the view would render.
func (m progressMode) showProgress(format string, files int, out *os.File) bool {
	if format != "pretty" || files == 0 || m == progressOff {
		return false
	}
	if m == progressOn {
		return true
	}
	return files > 1 && isTerminal(out)
}

type checkDirOutcome struct {
	fs      *source.FileSet
	results []driver.CheckDirResult
	report  *observ.Report
	err     error
}

// runCheckDirWithUI checks dir while a progress view renders driver events.
func runCheckDirWithUI(ctx context.Context, title string, files []string, dir string, opts driver.CheckOptions, jobs int) (*source.FileSet, []driver.CheckDirResult, *observ.Report, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, report, err := driver.CheckDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- checkDirOutcome{fs: fs, results: results, report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// модель могла выйти раньше; дочитываем события, чтобы не блокировать проверку
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, outcome.report, uiErr
	}
	return outcome.fs, outcome.results, outcome.report, outcome.err
}
