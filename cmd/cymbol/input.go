package main

import (
	"context"
	"fmt"
	"io"

	"cymbol/internal/driver"
)

// stdinName is how source read from standard input shows up in output.
const stdinName = "<stdin>"

// inputTarget returns the command argument; "-" and a missing argument
// both mean standard input.
func inputTarget(args []string) (target string, stdin bool) {
	if len(args) == 0 || args[0] == "-" {
		return "-", true
	}
	return args[0], false
}

// configDir is where the cymbol.toml lookup starts for target.
func configDir(target string, stdin bool) string {
	if stdin {
		return "."
	}
	return target
}

// checkInput checks a file on disk, or all of in when stdin is set.
func checkInput(ctx context.Context, target string, stdin bool, in io.Reader, opts driver.CheckOptions) (*driver.CheckResult, error) {
	if !stdin {
		return driver.Check(ctx, target, opts)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", stdinName, err)
	}
	return driver.CheckSource(ctx, stdinName, data, opts)
}
