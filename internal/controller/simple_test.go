package controller

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/gorule/internal/model"
)

func newTestSimpleUI(t *testing.T, opts ...SimpleOption) (*SimpleUI, *bytes.Buffer) {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd, opts...), &buf
}

func sampleResults() []m.FileResult {
	return []m.FileResult{
		{
			Source: m.Source{Origin: &m.File{Path: "path/a.go"}},
			Reports: []m.Report{
				{
					Rule: "yoda", Severity: m.SeverityError, Message: "literal 1 on the left of ==",
					Path: "path/a.go", Start: m.Position{Line: 3, Column: 6},
					Fix: []m.Edit{{Range: m.Range{Start: 1, End: 2}, Text: "x"}},
				},
				{
					Rule: "index-loop", Severity: m.SeverityWarn, Message: "loop over s by index i can use range",
					Path: "path/a.go", Start: m.Position{Line: 7, Column: 2},
					Suggestions: []m.SuggestionReport{{Message: "rewrite as for i := range s"}},
				},
			},
			Fixed: 2,
		},
		{Source: m.Source{Origin: &m.File{Path: "path/clean.go"}}, Reports: []m.Report{}},
	}
}

func TestSimpleUI_DisplayResults_Lines(t *testing.T) {
	ui, buf := newTestSimpleUI(t)

	if err := ui.DisplayResults(sampleResults()); err != nil {
		t.Fatalf("DisplayResults() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"path/a.go:3:6: error literal 1 on the left of == (yoda) [fixable]",
		"path/a.go:7:2: warning loop over s by index i can use range (index-loop)",
		"    suggestion: rewrite as for i := range s",
		"TOTAL FILES 1",
		"Applied 2 fix(es)",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}

	if strings.Contains(output, "path/clean.go") {
		t.Fatalf("clean files are left out of the summary\noutput:\n%s", output)
	}
}

func TestSimpleUI_DisplayResults_Table(t *testing.T) {
	ui, buf := newTestSimpleUI(t, WithTable(true))

	if err := ui.DisplayResults(sampleResults()); err != nil {
		t.Fatalf("DisplayResults() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{"LOCATION", "path/a.go:3:6", "auto", "1 suggestion(s)"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayResults_Clean(t *testing.T) {
	ui, buf := newTestSimpleUI(t)

	if err := ui.DisplayResults(nil); err != nil {
		t.Fatalf("DisplayResults() error = %v", err)
	}

	if got := buf.String(); got != "No problems found\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestSimpleUI_DisplayRules(t *testing.T) {
	ui, buf := newTestSimpleUI(t)

	rules := []m.RuleInfo{
		{Name: "yoda", Category: "style", Fixable: true, Severity: m.SeverityWarn, Description: "literal right"},
		{Name: "index-loop", Category: "style", HasSuggestions: true, Severity: m.SeverityOff},
	}

	if err := ui.DisplayRules(rules); err != nil {
		t.Fatalf("DisplayRules() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{"yoda", "auto", "suggest", "off", "TOTAL RULES 2"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayConcurrencyInfo(t *testing.T) {
	ui, buf := newTestSimpleUI(t)

	ui.DisplayConcurrencyInfo(4, 12)

	if got := buf.String(); got != "Linting 12 file(s) with 4 worker(s)\n" {
		t.Fatalf("output = %q", got)
	}
}
