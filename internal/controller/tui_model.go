package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/gorule/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 0, 0, 2)
	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 0, 1, 2)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedLine = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
)

// rowDelegate renders findings and rules as single lines.
type rowDelegate struct{}

func (d rowDelegate) Height() int  { return 1 }
func (d rowDelegate) Spacing() int { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d rowDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	width := lm.Width()
	selected := index == lm.Index()

	var line string

	switch it := item.(type) {
	case findingItem:
		sev := severityCell(it.report.Severity)
		if selected {
			sev = string(it.report.Severity)
		}

		line = fmt.Sprintf("%-7s %s  %s", sev, it.location(), it.report.Message)
	case ruleItem:
		line = fmt.Sprintf("%-22s %-12s %-6s %s", it.rule.Name, it.rule.Category, it.rule.Severity, it.rule.Description)
	default:
		return
	}

	line = truncateToWidth(line, width)
	if selected {
		line = selectedLine.Render(line)
	}

	_, _ = fmt.Fprint(w, line)
}

func severityCell(sev m.Severity) string {
	switch sev {
	case m.SeverityError:
		return errorStyle.Render("error")
	case m.SeverityWarn:
		return warnStyle.Render("warn")
	}

	return string(sev)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// browserModel lists findings or rules with filtering.
type browserModel struct {
	mode     StartMode
	width    int
	height   int
	items    list.Model
	threads  int
	files    int
	rendered bool

	errors   int
	warnings int
	fixed    int
}

func newBrowserModel(mode StartMode) browserModel {
	items := list.New([]list.Item{}, rowDelegate{}, 80, 20)
	items.SetShowPagination(false)
	items.SetShowFilter(true)
	items.SetShowHelp(false)
	items.SetShowTitle(false)
	items.SetShowStatusBar(false)
	items.FilterInput.Placeholder = "Filter…"

	return browserModel{mode: mode, items: items, width: 80, height: 24}
}

func (bm browserModel) Init() tea.Cmd {
	return nil
}

func (bm browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bm.width = msg.Width
		bm.height = msg.Height

	case tea.KeyMsg:
		if bm.items.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return bm, tea.Quit
			}
		}

		bm.items, cmd = bm.items.Update(msg)

	case concurrencyMsg:
		bm.threads = msg.threads
		bm.files = msg.files

	case resultsMsg:
		bm = bm.handleResults(msg.results)

	case rulesMsg:
		items := make([]list.Item, 0, len(msg.rules))
		for _, r := range msg.rules {
			items = append(items, ruleItem{rule: r})
		}

		bm.items.SetItems(items)
		bm.rendered = true
	}

	return bm, cmd
}

func (bm browserModel) handleResults(results []m.FileResult) browserModel {
	var items []list.Item

	bm.errors, bm.warnings, bm.fixed, bm.files = 0, 0, 0, len(results)

	for _, res := range results {
		bm.errors += res.Count(m.SeverityError)
		bm.warnings += res.Count(m.SeverityWarn)
		bm.fixed += res.Fixed

		for _, r := range res.Reports {
			items = append(items, findingItem{report: r})
		}
	}

	bm.items.SetItems(items)
	bm.rendered = true

	return bm
}

func (bm browserModel) View() string {
	if !bm.rendered {
		if bm.mode == ModeLint && bm.files > 0 {
			return fmt.Sprintf("Linting %d file(s) with %d worker(s)…\n", bm.files, bm.threads)
		}

		return "Loading…\n"
	}

	var title, summary string

	if bm.mode == ModeRules {
		title = titleStyle.Render("gorule rules")
		summary = summaryStyle.Render(fmt.Sprintf("Rules: %s", accentStyle.Render(fmt.Sprint(len(bm.items.Items())))))
	} else {
		title = titleStyle.Render("gorule findings")
		summary = summaryStyle.Render(fmt.Sprintf(
			"Errors: %s   Warnings: %s   Files: %s   Fixed: %s",
			errorStyle.Render(fmt.Sprint(bm.errors)),
			warnStyle.Render(fmt.Sprint(bm.warnings)),
			accentStyle.Render(fmt.Sprint(bm.files)),
			accentStyle.Render(fmt.Sprint(bm.fixed)),
		))
	}

	detail := bm.renderDetail()

	listHeight := bm.height - 9 - lipgloss.Height(detail)
	if listHeight < 5 {
		listHeight = 5
	}

	bm.items.SetHeight(listHeight)
	bm.items.SetWidth(bm.width - 6)

	table := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1).
		Render(bm.items.View())

	footer := dimStyle.
		Align(lipgloss.Center).
		Width(bm.width).
		Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, table, detail, footer)
}

// renderDetail describes the selected finding.
func (bm browserModel) renderDetail() string {
	it, ok := bm.items.SelectedItem().(findingItem)
	if !ok {
		return ""
	}

	r := it.report

	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", accentStyle.Render(r.Rule), r.Message)

	switch {
	case r.Fixable():
		fmt.Fprintf(&b, "fix: %d edit(s), apply with --fix\n", len(r.Fix))
	case r.FixErr != "":
		fmt.Fprintf(&b, "fix failed: %s\n", r.FixErr)
	}

	for _, s := range r.Suggestions {
		fmt.Fprintf(&b, "suggestion: %s\n", s.Message)
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(strings.TrimRight(b.String(), "\n"))
}
