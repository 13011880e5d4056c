package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/token"
	"sort"

	"github.com/go-kit/log/level"

	"github.com/mouse-blink/gorule/internal/adapter"
	"github.com/mouse-blink/gorule/internal/config"
	"github.com/mouse-blink/gorule/internal/engine"
	"github.com/mouse-blink/gorule/internal/log"
	m "github.com/mouse-blink/gorule/internal/model"
	"github.com/mouse-blink/gorule/internal/report"
	"github.com/mouse-blink/gorule/internal/rules"
	"github.com/mouse-blink/gorule/internal/traverse"
)

// RuleSetting is a catalog rule with its configured severity and options.
type RuleSetting struct {
	Rule     rules.Rule
	Severity m.Severity
	Options  map[string]any
}

// Info describes the setting for listings.
func (s RuleSetting) Info() m.RuleInfo {
	return m.RuleInfo{
		Name:           s.Rule.Meta.Name,
		Description:    s.Rule.Meta.Description,
		Category:       s.Rule.Meta.Category,
		Fixable:        s.Rule.Meta.Fixable,
		HasSuggestions: s.Rule.Meta.HasSuggestions,
		Severity:       s.Severity,
	}
}

// Settings resolves every catalog rule against cfg, sorted by name.
func Settings(cfg config.Config) []RuleSetting {
	all := rules.All()
	out := make([]RuleSetting, 0, len(all))

	for _, r := range all {
		sev, opts := cfg.Resolve(r.Meta.Name, r.Meta.Default)
		out = append(out, RuleSetting{Rule: r, Severity: sev, Options: opts})
	}

	return out
}

// RuleNames lists the names of every catalog rule.
func RuleNames() []string {
	all := rules.All()
	names := make([]string, 0, len(all))

	for _, r := range all {
		names = append(names, r.Meta.Name)
	}

	return names
}

// Fingerprint identifies a set of settings. Stored reports produced under a
// different fingerprint are stale.
func Fingerprint(settings []RuleSetting) string {
	h := sha256.New()

	for _, s := range settings {
		// fmt prints maps with sorted keys
		_, _ = fmt.Fprintf(h, "%s=%s %v\n", s.Rule.Meta.Name, s.Severity, s.Options)
	}

	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Linter runs the enabled rules over single sources.
type Linter interface {
	LintSource(src m.Source) (m.FileResult, error)
}

type linter struct {
	goAdapter adapter.GoFileAdapter
	settings  []RuleSetting
}

// NewLinter returns a Linter running the enabled rules of settings.
func NewLinter(goAdapter adapter.GoFileAdapter, settings []RuleSetting) Linter {
	enabled := make([]RuleSetting, 0, len(settings))

	for _, s := range settings {
		if s.Info().Enabled() {
			enabled = append(enabled, s)
		}
	}

	return &linter{goAdapter: goAdapter, settings: enabled}
}

type activation struct {
	rule  string
	table *engine.Table
	conv  report.Converter
}

// LintSource parses src, walks it once for all enabled rules and returns the
// reports not silenced by ignore directives, ordered by position.
func (l *linter) LintSource(src m.Source) (res m.FileResult, err error) {
	res = m.FileResult{Source: src, Reports: []m.Report{}}

	if src.Origin == nil {
		return res, fmt.Errorf("source without origin")
	}

	path := src.Origin.Path

	fset := token.NewFileSet()

	file, err := l.goAdapter.Parse(fset, string(path), src.Content)
	if err != nil {
		return res, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// a panicking rule fails the file, not the run
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to lint %s: rule panicked: %v", path, r)
		}
	}()

	builder := m.NewBuilder(fset, src.Content)
	idx := buildIgnoreIndex(file, fset, src.Content)

	acts := make([]activation, 0, len(l.settings))

	for _, s := range l.settings {
		if idx.file.all {
			break
		}

		acts = append(acts, activation{
			rule:  s.Rule.Meta.Name,
			table: rules.Activate(s.Rule, file, builder, s.Options),
			conv: report.Converter{
				Rule:     s.Rule.Meta.Name,
				Severity: s.Severity,
				Path:     path,
				Messages: s.Rule.Meta.Messages,
				Builder:  builder,
			},
		})
	}

	collector := &report.Collector{}
	sink := report.NewDedupSink(collector)

	traverse.Walk(file, func(selector string, ev m.Event) {
		for _, act := range acts {
			if !act.table.Has(selector) {
				continue
			}

			act.table.Dispatch(selector, ev, func(p *m.Problem) {
				if p.Node != nil && idx.ignores(act.rule, p.Node.Pos()) {
					return
				}

				sink.Report(act.conv.Convert(p))
			})
		}
	})

	sort.SliceStable(collector.Reports, func(i, j int) bool {
		a, b := collector.Reports[i], collector.Reports[j]
		if a.Range.Start != b.Range.Start {
			return a.Range.Start < b.Range.Start
		}

		return a.Rule < b.Rule
	})

	res.Reports = append(res.Reports, collector.Reports...)

	_ = level.Debug(log.Logger).Log("msg", "linted source", "path", path, "rules", len(acts), "reports", len(res.Reports))

	return res, nil
}
