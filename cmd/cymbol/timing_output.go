package main

import (
	"fmt"
	"io"

	"cymbol/internal/observ"
)

func printTimings(out io.Writer, report *observ.Report) {
	if out == nil || report == nil {
		return
	}
	for _, ph := range report.Phases {
		if ph.Note != "" {
			fmt.Fprintf(out, "%-9s %.1f ms (%s)\n", ph.Name, ph.DurationMS, ph.Note)
			continue
		}
		fmt.Fprintf(out, "%-9s %.1f ms\n", ph.Name, ph.DurationMS)
	}
	fmt.Fprintf(out, "%-9s %.1f ms\n", "total", report.TotalMS)
}
