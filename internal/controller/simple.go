package controller

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/gorule/internal/model"
)

// SimpleUI prints findings as lines or a table on the command's output.
type SimpleUI struct {
	cmd   *cobra.Command
	table bool
	mu    sync.Mutex
}

// SimpleOption configures a SimpleUI.
type SimpleOption func(*SimpleUI)

// WithTable renders findings as a table instead of one line each.
func WithTable(enabled bool) SimpleOption {
	return func(s *SimpleUI) {
		s.table = enabled
	}
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, opts ...SimpleOption) *SimpleUI {
	s := &SimpleUI{cmd: cmd}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Wait returns immediately, there is nothing to close.
func (s *SimpleUI) Wait() {}

// DisplayConcurrencyInfo prints the worker setup.
func (s *SimpleUI) DisplayConcurrencyInfo(threads int, files int) {
	s.printf("Linting %d file(s) with %d worker(s)\n", files, threads)
}

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
	pathColor  = color.New(color.FgCyan)
	ruleColor  = color.New(color.Faint)
	okColor    = color.New(color.FgGreen)
)

func severityLabel(sev m.Severity) string {
	switch sev {
	case m.SeverityError:
		return errorColor.Sprint("error")
	case m.SeverityWarn:
		return warnColor.Sprint("warning")
	default:
		return string(sev)
	}
}

// DisplayResults prints every finding followed by a per-file summary.
func (s *SimpleUI) DisplayResults(results []m.FileResult) error {
	total, errs, warns, fixed := tally(results)

	if total == 0 {
		s.printf("%s\n", okColor.Sprint("No problems found"))
		s.printFixed(fixed)

		return nil
	}

	if s.table {
		s.printFindingsTable(results)
	} else {
		s.printFindingLines(results)
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Errors", "Warnings", "Fixed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	files := 0

	for _, res := range results {
		if len(res.Reports) == 0 && res.Fixed == 0 {
			continue
		}

		files++

		table.Append([]string{
			displayPath(res),
			strconv.Itoa(res.Count(m.SeverityError)),
			strconv.Itoa(res.Count(m.SeverityWarn)),
			strconv.Itoa(res.Fixed),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", files),
		strconv.Itoa(errs),
		strconv.Itoa(warns),
		strconv.Itoa(fixed),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())
	s.printFixed(fixed)

	return nil
}

func (s *SimpleUI) printFindingLines(results []m.FileResult) {
	for _, res := range results {
		for _, r := range res.Reports {
			marker := ""
			if r.Fixable() {
				marker = " [fixable]"
			}

			s.printf("%s:%d:%d: %s %s %s%s\n",
				pathColor.Sprint(r.Path), r.Start.Line, r.Start.Column,
				severityLabel(r.Severity), r.Message, ruleColor.Sprintf("(%s)", r.Rule), marker)

			if r.FixErr != "" {
				s.printf("    fix failed: %s\n", r.FixErr)
			}

			for _, sg := range r.Suggestions {
				s.printf("    suggestion: %s\n", sg.Message)
			}
		}
	}
}

func (s *SimpleUI) printFindingsTable(results []m.FileResult) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Location", "Severity", "Rule", "Message", "Fix"})
	table.SetAutoWrapText(false)

	for _, res := range results {
		for _, r := range res.Reports {
			fix := ""
			switch {
			case r.Fixable():
				fix = "auto"
			case len(r.Suggestions) > 0:
				fix = fmt.Sprintf("%d suggestion(s)", len(r.Suggestions))
			}

			table.Append([]string{
				fmt.Sprintf("%s:%d:%d", r.Path, r.Start.Line, r.Start.Column),
				string(r.Severity),
				r.Rule,
				r.Message,
				fix,
			})
		}
	}

	table.Render()
	s.printf("%s", buf.String())
}

func (s *SimpleUI) printFixed(fixed int) {
	if fixed > 0 {
		s.printf("Applied %d fix(es)\n", fixed)
	}
}

// DisplayRules prints the rule catalog as a table.
func (s *SimpleUI) DisplayRules(rules []m.RuleInfo) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Rule", "Category", "Severity", "Fix", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, r := range rules {
		table.Append([]string{r.Name, r.Category, string(r.Severity), fixKind(r), r.Description})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Rules %d", len(rules)), "", "", "", ""})
	table.Render()
	s.printf("%s", buf.String())

	return nil
}

func fixKind(r m.RuleInfo) string {
	switch {
	case r.Fixable && r.HasSuggestions:
		return "auto+suggest"
	case r.Fixable:
		return "auto"
	case r.HasSuggestions:
		return "suggest"
	}

	return ""
}

func displayPath(res m.FileResult) string {
	if res.Source.Origin == nil {
		return ""
	}

	return string(res.Source.Origin.Path)
}

func tally(results []m.FileResult) (total, errs, warns, fixed int) {
	for _, res := range results {
		total += len(res.Reports)
		errs += res.Count(m.SeverityError)
		warns += res.Count(m.SeverityWarn)
		fixed += res.Fixed
	}

	return total, errs, warns, fixed
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
