// Package rules contains the lint rules. Each rule registers listeners on
// node selectors and reports problems with optional fixes and suggestions.
package rules

import (
	"fmt"
	"go/ast"
	"sort"

	"github.com/mouse-blink/gorule/internal/engine"
	m "github.com/mouse-blink/gorule/internal/model"
)

// Meta describes a rule.
type Meta struct {
	Name        string
	Description string
	Category    string
	Fixable     bool
	// HasSuggestions is set for rules offering alternative fixes.
	HasSuggestions bool
	// Messages maps message ids to templates with {{key}} placeholders.
	Messages map[string]string
	Default  m.Severity
}

// Rule is a registered lint rule.
type Rule struct {
	Meta   Meta
	Create func(ctx *Context)
}

// Context is handed to Rule.Create once per linted file.
type Context struct {
	registry *engine.Registry
	file     *ast.File
	builder  *m.Builder
	options  map[string]any
}

// NewContext prepares a rule activation for one parsed file.
func NewContext(file *ast.File, builder *m.Builder, options map[string]any) *Context {
	return &Context{
		registry: engine.NewRegistry(),
		file:     file,
		builder:  builder,
		options:  options,
	}
}

// On registers l for selector.
func (c *Context) On(selector string, l engine.Listener) {
	c.registry.On(selector, l)
}

// OnEach registers l for every selector.
func (c *Context) OnEach(selectors []string, l engine.Listener) {
	c.registry.OnEach(selectors, l)
}

// OnExit registers l for leaving nodes matching selector.
func (c *Context) OnExit(selector string, l engine.Listener) {
	c.registry.OnExit(selector, l)
}

// OnExitEach registers l for leaving nodes matching any selector.
func (c *Context) OnExitEach(selectors []string, l engine.Listener) {
	c.registry.OnExitEach(selectors, l)
}

// File returns the file being linted.
func (c *Context) File() *ast.File {
	return c.file
}

// Builder returns the edit builder of the file.
func (c *Context) Builder() *m.Builder {
	return c.builder
}

// Text returns the source text of n.
func (c *Context) Text(n ast.Node) string {
	return c.builder.Text(n)
}

// StringOption returns the string option key or def.
func (c *Context) StringOption(key, def string) string {
	v, ok := c.options[key]
	if !ok {
		return def
	}

	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}

	return s
}

// Compile freezes the listeners registered so far.
func (c *Context) Compile() *engine.Table {
	return c.registry.Compile()
}

// Activate runs rule.Create against a fresh context and returns its table.
func Activate(rule Rule, file *ast.File, builder *m.Builder, options map[string]any) *engine.Table {
	ctx := NewContext(file, builder, options)
	rule.Create(ctx)

	return ctx.Compile()
}

var catalog = map[string]Rule{}

func register(r Rule) {
	if _, dup := catalog[r.Meta.Name]; dup {
		panic(fmt.Sprintf("rules: duplicate rule %q", r.Meta.Name))
	}

	if r.Meta.Default == "" {
		r.Meta.Default = m.SeverityWarn
	}

	catalog[r.Meta.Name] = r
}

// All returns every rule sorted by name.
func All() []Rule {
	out := make([]Rule, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Meta.Name < out[j].Meta.Name
	})

	return out
}

// Lookup returns the rule named name.
func Lookup(name string) (Rule, bool) {
	r, ok := catalog[name]

	return r, ok
}
