// Package controller renders lint results on the terminal.
package controller

import (
	m "github.com/mouse-blink/gorule/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeLint StartMode = iota
	ModeView
	ModeRules
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithLintMode shows progress and then the findings of a lint run.
func WithLintMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeLint
	}
}

// WithViewMode shows previously stored findings.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithRulesMode shows the rule catalog.
func WithRulesMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRules
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeLint}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI displays lint progress, findings and the rule catalog.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplayConcurrencyInfo(threads int, files int)
	DisplayResults(results []m.FileResult) error
	DisplayRules(rules []m.RuleInfo) error
}
