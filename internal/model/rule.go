package model

// RuleInfo describes a catalog rule together with its effective setting.
type RuleInfo struct {
	Name           string
	Description    string
	Category       string
	Fixable        bool
	HasSuggestions bool
	Severity       Severity
}

// Enabled reports whether the rule runs.
func (r RuleInfo) Enabled() bool {
	return r.Severity != SeverityOff && r.Severity != ""
}
