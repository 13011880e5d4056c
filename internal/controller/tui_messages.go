package controller

import (
	"fmt"

	m "github.com/mouse-blink/gorule/internal/model"
)

// Message types.
type concurrencyMsg struct {
	threads int
	files   int
}

type resultsMsg struct {
	results []m.FileResult
}

type rulesMsg struct {
	rules []m.RuleInfo
}

// List item types.
type findingItem struct {
	report m.Report
}

func (f findingItem) FilterValue() string {
	return string(f.report.Path) + " " + f.report.Rule + " " + f.report.Message
}

func (f findingItem) location() string {
	return fmt.Sprintf("%s:%d:%d", f.report.Path, f.report.Start.Line, f.report.Start.Column)
}

type ruleItem struct {
	rule m.RuleInfo
}

func (r ruleItem) FilterValue() string {
	return r.rule.Name + " " + r.rule.Category
}
