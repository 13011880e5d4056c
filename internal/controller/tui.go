package controller

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/gorule/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	mu      sync.Mutex
	program *tea.Program
	started bool
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, done: make(chan struct{})}
}

// Start launches the Bubble Tea program for the selected mode.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options...)

	return t.startWithModel(newBrowserModel(cfg.mode))
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	t.started = true

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

func (t *TUI) ensureStarted() {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()

	if !started {
		_ = t.Start()
	}
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	p, started := t.program, t.started
	t.mu.Unlock()

	if !started || p == nil {
		return
	}

	select {
	case <-t.done:
	default:
		p.Send(msg)
	}
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait() {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()

	if started {
		<-t.done
	}
}

// Close stops the program if it is still running.
func (t *TUI) Close() {
	t.mu.Lock()
	p, started := t.program, t.started
	t.mu.Unlock()

	if !started {
		return
	}

	select {
	case <-t.done:
		return
	default:
	}

	p.Quit()
	<-t.done
}

// DisplayConcurrencyInfo shows the worker setup while linting.
func (t *TUI) DisplayConcurrencyInfo(threads int, files int) {
	t.ensureStarted()
	t.send(concurrencyMsg{threads: threads, files: files})
}

// DisplayResults hands the findings to the browser.
func (t *TUI) DisplayResults(results []m.FileResult) error {
	t.ensureStarted()
	t.send(resultsMsg{results: results})

	return nil
}

// DisplayRules hands the rule catalog to the browser.
func (t *TUI) DisplayRules(rules []m.RuleInfo) error {
	t.ensureStarted()
	t.send(rulesMsg{rules: rules})

	return nil
}
