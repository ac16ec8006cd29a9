package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cymbol/internal/callgraph"
)

var callgraphCmd = &cobra.Command{
	Use:   "callgraph [flags] [file.cym|-]",
	Short: "Print the function call graph of a Cymbol source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCallgraph,
}

func init() {
	callgraphCmd.Flags().String("format", "text", "output format (text|dot)")
}

func runCallgraph(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "dot" {
		return fmt.Errorf("unknown format: %s", format)
	}
	result, color, err := analyzeForDump(cmd, args)
	if err != nil {
		return err
	}

	graph := callgraph.Build(result.Builder, result.FileID, *result.Sema)
	if format == "dot" {
		fmt.Fprint(os.Stdout, graph.DOT())
	} else {
		fmt.Fprintln(os.Stdout, graph.String())
	}
	reportToStderr(result, color)
	return nil
}
