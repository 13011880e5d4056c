package model

import "fmt"

// Severity is the configured importance of a rule's findings.
type Severity string

const (
	// SeverityOff disables a rule.
	SeverityOff Severity = "off"
	// SeverityWarn reports findings without failing the run.
	SeverityWarn Severity = "warn"
	// SeverityError reports findings and fails the run.
	SeverityError Severity = "error"
)

// ParseSeverity accepts the names used in configuration files.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	}

	return "", fmt.Errorf("unknown severity %q", s)
}

// Position is a 1-based line/column location.
type Position struct {
	Line   int `yaml:"line"`
	Column int `yaml:"column"`
}

// SuggestionReport is a resolved suggestion attached to a Report.
type SuggestionReport struct {
	Message string `yaml:"message"`
	Edits   []Edit `yaml:"edits,omitempty"`
	Err     string `yaml:"error,omitempty"`
}

// Report is one finding in the shape handed to sinks, stores and UIs.
type Report struct {
	Rule        string             `yaml:"rule"`
	Severity    Severity           `yaml:"severity"`
	Message     string             `yaml:"message"`
	Path        Path               `yaml:"path"`
	Start       Position           `yaml:"start"`
	End         Position           `yaml:"end"`
	Range       Range              `yaml:"range"`
	Fix         []Edit             `yaml:"fix,omitempty"`
	FixErr      string             `yaml:"fix_error,omitempty"`
	Suggestions []SuggestionReport `yaml:"suggestions,omitempty"`
}

// Fixable reports whether the finding carries a resolved automatic fix.
func (r Report) Fixable() bool {
	return len(r.Fix) > 0
}

// FileResult holds the lint results for a single source file.
type FileResult struct {
	Source  Source   `yaml:"source"`
	Reports []Report `yaml:"reports"`
	// Fixed counts fixes applied to the file during this run.
	Fixed int `yaml:"fixed,omitempty"`
}

// Count returns the number of reports at the given severity.
func (r FileResult) Count(sev Severity) int {
	n := 0

	for _, rep := range r.Reports {
		if rep.Severity == sev {
			n++
		}
	}

	return n
}
