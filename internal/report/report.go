// Package report turns normalized problems into reports and routes them to
// sinks.
package report

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/gorule/internal/model"
)

// Sink receives reports as they are produced.
type Sink interface {
	Report(r m.Report)
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(r m.Report)

// Report calls f(r).
func (f SinkFunc) Report(r m.Report) {
	f(r)
}

// Collector keeps every report in arrival order.
type Collector struct {
	Reports []m.Report
}

// Report appends r.
func (c *Collector) Report(r m.Report) {
	c.Reports = append(c.Reports, r)
}

var placeholder = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// Interpolate substitutes {{ key }} placeholders in template with data.
// Placeholders without a matching key are left verbatim.
func Interpolate(template string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	return placeholder.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholder.FindStringSubmatch(match)[1]
		if v, ok := data[key]; ok {
			return v
		}

		return match
	})
}

// Converter builds reports for the problems of one rule in one file.
type Converter struct {
	Rule     string
	Severity m.Severity
	Path     m.Path
	Messages map[string]string
	Builder  *m.Builder
}

// Message resolves the text of a problem or suggestion.
func (c Converter) Message(id, text string, data map[string]string) string {
	if id != "" {
		if tmpl, ok := c.Messages[id]; ok {
			return Interpolate(tmpl, data)
		}
	}

	if text != "" {
		return Interpolate(text, data)
	}

	return id
}

// Convert resolves p's fix and suggestions and returns the report. Fix
// errors are recorded on the report.
func (c Converter) Convert(p *m.Problem) m.Report {
	r := m.Report{
		Rule:     c.Rule,
		Severity: c.Severity,
		Message:  c.Message(p.MessageID, p.Message, p.Data),
		Path:     c.Path,
	}

	if p.Node != nil {
		r.Range = c.Builder.Range(p.Node)
		r.Start = c.Builder.Position(p.Node.Pos())
		r.End = c.Builder.Position(p.Node.End())
	}

	if p.Resolve != nil {
		edits, err := p.Resolve(c.Builder)
		if err != nil {
			r.FixErr = err.Error()
		} else {
			r.Fix = edits
		}
	}

	for _, s := range p.Suggestions {
		sr := m.SuggestionReport{Message: c.Message(s.MessageID, s.Desc, s.Data)}

		if s.Resolve != nil {
			edits, err := s.Resolve(c.Builder)
			if err != nil {
				sr.Err = err.Error()
			} else {
				sr.Edits = edits
			}
		}

		// a suggestion that declined to fix has nothing to offer
		if len(sr.Edits) == 0 && sr.Err == "" {
			continue
		}

		r.Suggestions = append(r.Suggestions, sr)
	}

	return r
}
