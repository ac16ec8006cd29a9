package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"cymbol/internal/driver"
)

func TestInputTarget(t *testing.T) {
	cases := []struct {
		args   []string
		target string
		stdin  bool
	}{
		{nil, "-", true},
		{[]string{"-"}, "-", true},
		{[]string{"a.cym"}, "a.cym", false},
	}
	for _, tc := range cases {
		target, stdin := inputTarget(tc.args)
		if target != tc.target || stdin != tc.stdin {
			t.Errorf("inputTarget(%q) = %q, %v", tc.args, target, stdin)
		}
	}
	if got := configDir("-", true); got != "." {
		t.Errorf("configDir for stdin = %q", got)
	}
}

func TestCheckInputReadsStdin(t *testing.T) {
	in := strings.NewReader("void f() { g(); }\n")
	res, err := checkInput(context.Background(), "-", true, in, driver.CheckOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.File.Path != stdinName {
		t.Errorf("path = %q", res.File.Path)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code.ID() != "SEM3006" {
		t.Errorf("diagnostics = %v", items)
	}
}

func TestReportDumpInputPrintsTimingsOnSyntaxError(t *testing.T) {
	res, err := driver.CheckSource(context.Background(), stdinName, []byte("void f() { int x }"), driver.CheckOptions{EnableTimings: true})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if reportDumpInput(&buf, res, true, false) {
		t.Fatal("dump allowed after syntax errors")
	}
	out := buf.String()
	for _, want := range []string{"parse", "total", stdinName} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}
