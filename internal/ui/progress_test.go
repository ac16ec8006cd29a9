package ui

import (
	"strings"
	"testing"

	"cymbol/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("checking", []string{"src/a.cym", "src/b.cym"}, events).(*progressModel)

	m.Update(eventMsg{File: "./src/a.cym", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.Update(eventMsg{File: "src/b.cym", Stage: driver.StageSema, Status: driver.StatusError})
	m.Update(eventMsg{File: "src/unknown.cym", Stage: driver.StageSema, Status: driver.StatusDone})

	if got := m.items[0].status; got != "parsing" {
		t.Errorf("a.cym status = %q, want parsing", got)
	}
	if got := m.items[1].status; got != "error" || !m.items[1].finished() {
		t.Errorf("b.cym status = %q, want error", got)
	}

	view := m.View()
	if !strings.Contains(view, "src/a.cym") || !strings.Contains(view, "parsing") {
		t.Errorf("view misses file rows:\n%s", view)
	}

	m.Update(doneMsg{})
	if !m.done || !strings.HasPrefix(strings.TrimLeft(stripANSI(m.View()), " "), "done: checking") {
		t.Errorf("model must report completion:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.cym", 20, "short.cym"},
		{"very/long/path/to/file.cym", 10, "very..."},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip && r == 'm':
			skip = false
		case !skip:
			b.WriteRune(r)
		}
	}
	return b.String()
}
